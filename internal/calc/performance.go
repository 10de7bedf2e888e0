package calc

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Conversion constants for heat pump output math.
const (
	KWPerTonOutput = 3.517
	BtuPerKWh      = 3412.14
)

// Atmospheric lapse rates in F per 1000 ft, used for elevation adjustment.
const (
	dryLapseRate       = 5.4
	saturatedLapseRate = 3.0
)

// GetCapacityFactor returns the heat pump capacity derating multiplier at
// an outdoor temperature. Full capacity at 47F and above, 1% loss per
// degree down to 17F, then a steeper slope floored at 30%.
func GetCapacityFactor(tempOut float64) float64 {
	if tempOut >= 47 {
		return 1.0
	}
	if tempOut < 17 {
		return math.Max(0.3, 0.7-(17-tempOut)*0.0074)
	}
	return math.Max(0.3, 1.0-(47-tempOut)*0.01)
}

// HourlyInput describes the system and building for one hour of heating.
// HeatLossBtu is the design heat loss at a 70F delta-T.
type HourlyInput struct {
	Tons            float64
	IndoorTemp      float64
	HeatLossBtu     float64
	CompressorPower float64 // kW
}

// HourlyPerformance is the heating result for one hour.
type HourlyPerformance struct {
	ElectricalKw     float64
	Runtime          float64 // percent, 0-100
	ActualIndoorTemp float64
	AuxKw            float64
	DefrostPenalty   float64
}

// ComputeHourlyPerformance models one hour of heating at the given outdoor
// temperature and humidity. Between 20F and 45F the outdoor coil frosts
// and periodic defrost cycles consume extra energy; the penalty scales
// with humidity up to 15%. Below 20F the air is too dry to frost and above
// 45F defrost is rare.
func ComputeHourlyPerformance(in HourlyInput, outdoorTemp, humidity float64) HourlyPerformance {
	btuLossPerDegF := 0.0
	if in.HeatLossBtu > 0 {
		btuLossPerDegF = in.HeatLossBtu / 70
	}
	tempDiff := math.Max(1, in.IndoorTemp-outdoorTemp)
	buildingHeatLossBtu := btuLossPerDegF * tempDiff

	capacityFactor := GetCapacityFactor(outdoorTemp)
	heatpumpOutputBtu := in.Tons * KWPerTonOutput * capacityFactor * BtuPerKWh

	powerFactor := 1 / math.Max(0.7, capacityFactor)
	baseElectricalKw := in.CompressorPower * powerFactor

	defrostPenalty := 1.0
	if outdoorTemp > 20 && outdoorTemp < 45 {
		defrostPenalty = 1 + 0.15*(humidity/100)
	}
	electricalKw := baseElectricalKw * defrostPenalty

	runtime := 100.0
	if heatpumpOutputBtu > 0 {
		runtime = (buildingHeatLossBtu / heatpumpOutputBtu) * 100
	}
	deficitBtu := math.Max(0, buildingHeatLossBtu-heatpumpOutputBtu)
	auxKw := deficitBtu / BtuPerKWh

	actualIndoorTemp := in.IndoorTemp
	if runtime >= 100 {
		runtime = 100
		if btuLossPerDegF > 0 {
			actualIndoorTemp = heatpumpOutputBtu/btuLossPerDegF + outdoorTemp
		}
	}
	runtime = math.Max(0, runtime)

	return HourlyPerformance{
		ElectricalKw:     sanitize(electricalKw, 0),
		Runtime:          sanitize(runtime, 0),
		ActualIndoorTemp: sanitize(actualIndoorTemp, in.IndoorTemp),
		AuxKw:            sanitize(auxKw, 0),
		DefrostPenalty:   sanitize(defrostPenalty, 1.0),
	}
}

// CoolingInput describes the system and building for one hour of cooling.
type CoolingInput struct {
	Tons          float64
	IndoorTemp    float64
	HeatLossBtu   float64
	SEER2         float64
	SolarExposure float64
}

// CoolingPerformance is the cooling result for one hour.
type CoolingPerformance struct {
	ElectricalKw     float64
	Runtime          float64
	ActualIndoorTemp float64
	DeficitBtu       float64
	CapacityDerate   float64
}

// ComputeHourlyCoolingPerformance models one hour of cooling. Heat gain
// uses the design loss per degree as a universal load factor, a solar
// exposure multiplier, and a light latent adjustment with humidity.
// Capacity derates 1% per degree above 95F, floored at 75%.
func ComputeHourlyCoolingPerformance(in CoolingInput, outdoorTemp, humidity float64) CoolingPerformance {
	solar := in.SolarExposure
	if solar <= 0 {
		solar = 1.0
	}

	buildingLoadPerDegF := 0.0
	if in.HeatLossBtu > 0 {
		buildingLoadPerDegF = in.HeatLossBtu / 70
	}
	tempDiff := math.Max(0, outdoorTemp-in.IndoorTemp)
	buildingHeatGainBtu := buildingLoadPerDegF * tempDiff * solar
	buildingHeatGainBtu *= 1 + (humidity/100)*0.05

	nominalCapacityBtu := in.Tons * KWPerTonOutput * BtuPerKWh
	capacityDerate := 1.0
	if outdoorTemp > 95 {
		capacityDerate = math.Max(0.75, 1-(outdoorTemp-95)*0.01)
	}
	availableCapacityBtu := nominalCapacityBtu * capacityDerate

	deficitBtu := math.Max(0, buildingHeatGainBtu-availableCapacityBtu)
	runtime := 100.0
	if availableCapacityBtu > 0 {
		runtime = (buildingHeatGainBtu / availableCapacityBtu) * 100
	}
	runtime = math.Min(100, math.Max(0, runtime))

	seer2 := in.SEER2
	if seer2 < 1 {
		seer2 = 1
	}
	electricalKw := buildingHeatGainBtu / (seer2 * 1000)

	actualIndoorTemp := in.IndoorTemp
	if deficitBtu > 0 && buildingLoadPerDegF > 0 {
		requiredDiff := availableCapacityBtu / buildingLoadPerDegF
		actualIndoorTemp = outdoorTemp - requiredDiff
	}

	return CoolingPerformance{
		ElectricalKw:     sanitize(electricalKw, 0),
		Runtime:          sanitize(runtime, 0),
		ActualIndoorTemp: sanitize(actualIndoorTemp, in.IndoorTemp),
		DeficitBtu:       sanitize(deficitBtu, 0),
		CapacityDerate:   capacityDerate,
	}
}

// ForecastHour is one hour of weather data.
type ForecastHour struct {
	Time     time.Time
	Temp     float64
	Humidity float64
}

// AdjustForecastForElevation shifts forecast temperatures by the elevation
// difference between the home and the weather station, interpolating the
// lapse rate between the saturated and dry adiabatic rates by humidity.
// Differences under 10 ft are skipped as insignificant.
func AdjustForecastForElevation(forecast []ForecastHour, homeElevation, stationElevation float64) []ForecastHour {
	if len(forecast) == 0 {
		return forecast
	}

	elevationDiff := homeElevation - stationElevation
	if math.Abs(elevationDiff) < 10 {
		return forecast
	}

	adjusted := make([]ForecastHour, len(forecast))
	for i, hour := range forecast {
		humidity := hour.Humidity
		if humidity < 0 || humidity > 100 {
			humidity = 50
		}
		humidityRatio := humidity / 100

		lapseRate := saturatedLapseRate + (dryLapseRate-saturatedLapseRate)*(1-humidityRatio)
		tempAdjustment := (elevationDiff / 1000) * lapseRate

		adjusted[i] = hour
		adjusted[i].Temp = hour.Temp - tempAdjustment
	}
	return adjusted
}

// PerformanceMetrics is the settings-derived system summary for the
// performance analyzer.
type PerformanceMetrics struct {
	HeatLossFactor    float64
	ThermalFactor     float64
	AvgCOP            float64
	RatedCapacity     float64
	InsulationQuality string
}

// CalculatePerformanceMetrics derives the heat loss factor, thermal factor,
// average COP, and rated capacity from building and equipment settings.
func CalculatePerformanceMetrics(squareFeet, ceilingHeight, insulationLevel, hspf2, tons float64) PerformanceMetrics {
	if squareFeet <= 0 {
		squareFeet = 2000
	}
	if ceilingHeight <= 0 {
		ceilingHeight = 8
	}
	if insulationLevel <= 0 {
		insulationLevel = 1.0
	}
	if hspf2 <= 0 {
		hspf2 = 9
	}
	if tons <= 0 {
		tons = 3
	}

	volume := squareFeet * ceilingHeight
	heatLossFactor := math.Round(volume * heatLossPerCubicFt * insulationLevel)

	quality := "Poor"
	switch {
	case insulationLevel <= 0.7:
		quality = "Good"
	case insulationLevel <= 1.1:
		quality = "Average"
	}

	return PerformanceMetrics{
		HeatLossFactor:    heatLossFactor,
		ThermalFactor:     math.Round(heatLossFactor/squareFeet*100) / 100,
		AvgCOP:            math.Round(hspf2/3.4*100) / 100,
		RatedCapacity:     tons * 12000,
		InsulationQuality: quality,
	}
}

// FormatPerformanceResponse renders performance metrics as markdown.
func FormatPerformanceResponse(m PerformanceMetrics, squareFeet float64) string {
	var b strings.Builder
	b.WriteString("**Your System Performance Metrics**\n\n")
	fmt.Fprintf(&b, "• **Heat Loss Factor:** %.0f BTU/hr per °F\n", m.HeatLossFactor)
	fmt.Fprintf(&b, "  (Building loses %.0f BTU/hr for each degree of temperature difference)\n\n", m.HeatLossFactor)
	fmt.Fprintf(&b, "• **Thermal Factor:** %.2f BTU/hr/°F per sq ft\n", m.ThermalFactor)
	fmt.Fprintf(&b, "  (%s insulation for %.0f sq ft home)\n\n", m.InsulationQuality, squareFeet)
	fmt.Fprintf(&b, "• **Average COP:** %.2f\n", m.AvgCOP)
	fmt.Fprintf(&b, "  (Heat pump produces %.2f units of heat per unit of electricity)\n\n", m.AvgCOP)
	fmt.Fprintf(&b, "• **Rated Capacity:** %.0f BTU/hr at 47°F\n\n", m.RatedCapacity)

	switch {
	case m.ThermalFactor > 1.2:
		b.WriteString("⚠️ High thermal factor - consider improving insulation")
	case m.ThermalFactor < 0.6:
		b.WriteString("✓ Excellent thermal performance")
	default:
		b.WriteString("✓ Typical thermal performance")
	}
	return b.String()
}

func sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
