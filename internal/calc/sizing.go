package calc

import "math"

// SizingParams describes the home for a Manual J-style load estimate.
type SizingParams struct {
	SquareFeet        float64
	CeilingHeight     float64
	InsulationQuality string // "poor", "average", "good", "excellent"
	WindowType        string // "single", "double", "triple", "low-e"
	ClimateZone       string // "cold", "moderate", "hot"
	NumberOfOccupants int
}

// SizingResult is the simplified load calculation output.
type SizingResult struct {
	HeatingLoad     float64
	CoolingLoad     float64
	RecommendedTons float64
	HeatingTons     float64
	CoolingTons     float64
	InternalGains   float64
}

var insulationMultipliers = map[string]float64{
	"poor":      1.4,
	"average":   1.0,
	"good":      0.65,
	"excellent": 0.45,
}

var windowMultipliers = map[string]float64{
	"single": 1.2,
	"double": 1.0,
	"triple": 0.8,
	"low-e":  0.7,
}

type climateLoad struct {
	heating float64 // BTU per sq ft
	cooling float64
}

var climateBaseLoads = map[string]climateLoad{
	"cold":     {50, 20},
	"moderate": {35, 25},
	"hot":      {20, 35},
}

// CalculateSystemSizing runs a simplified Manual J-style load calculation.
// Internal gains add about 400 BTU/hr per occupant to the cooling load and
// the recommended size rounds up to the nearest half ton.
func CalculateSystemSizing(p SizingParams) SizingResult {
	if p.SquareFeet <= 0 {
		p.SquareFeet = 2000
	}
	if p.NumberOfOccupants <= 0 {
		p.NumberOfOccupants = 2
	}

	insulationMult, ok := insulationMultipliers[p.InsulationQuality]
	if !ok {
		insulationMult = 1.0
	}
	windowMult, ok := windowMultipliers[p.WindowType]
	if !ok {
		windowMult = 1.0
	}
	loads, ok := climateBaseLoads[p.ClimateZone]
	if !ok {
		loads = climateBaseLoads["moderate"]
	}

	heatingLoad := math.Round(p.SquareFeet * loads.heating * insulationMult * windowMult)

	internalGains := float64(p.NumberOfOccupants) * 400
	coolingLoad := math.Round(p.SquareFeet*loads.cooling*insulationMult*windowMult + internalGains)

	heatingTons := math.Ceil(heatingLoad / 12000)
	coolingTons := math.Ceil(coolingLoad / 12000)
	recommended := math.Max(heatingTons, coolingTons)
	practicalTons := math.Ceil(recommended*2) / 2

	return SizingResult{
		HeatingLoad:     heatingLoad,
		CoolingLoad:     coolingLoad,
		RecommendedTons: practicalTons,
		HeatingTons:     math.Round(heatingLoad/12000*10) / 10,
		CoolingTons:     math.Round(coolingLoad/12000*10) / 10,
		InternalGains:   internalGains,
	}
}
