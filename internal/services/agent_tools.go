package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"joule/internal/calc"
	"joule/pkg/jouletypes"
)

// Deterministic tool layer for the agent. Keyword intent detection picks
// which calculation engines to run against the stored settings, and each
// result rides into the prompt as a TOOL RESULTS block so the model
// answers from computed numbers instead of guessing.

// toolResult is one executed tool's rendered output.
type toolResult struct {
	Name   string
	Output string
}

var (
	setbackToolRe     = regexp.MustCompile(`(?i)setback|set\s+back|turn(?:ing)?\s+(?:it\s+|the\s+(?:heat|thermostat|temperature)\s+)?down\s+at\s+night|lower(?:ing)?\s+(?:it\s+|the\s+thermostat\s+)?at\s+night`)
	comparisonToolRe  = regexp.MustCompile(`(?i)heat\s*pump.{0,40}(?:vs\.?|versus|or|against|compared?\s+to|cheaper\s+than|switch(?:ing)?\s+to)\s+(?:a\s+)?gas|gas\s+(?:furnace\s+)?.{0,20}(?:vs\.?|versus|compared?\s+to|cheaper\s+than)\s+(?:a\s+)?heat\s*pump`)
	sizingToolRe      = regexp.MustCompile(`(?i)what\s+size|how\s+many\s+tons|tonnage|right[- ]sized?|properly\s+sized|size\s+(?:of\s+)?(?:heat\s*pump|system|unit)`)
	performanceToolRe = regexp.MustCompile(`(?i)thermal\s+performance|performance\s+metrics|how\s+(?:efficient|well)\s+is\s+my\s+home|how\s+well\s+insulated|heat\s+loss\s+factor`)
	chargeToolRe      = regexp.MustCompile(`(?i)subcool|superheat|refrigerant\s+charge|charging\s+targets?|charge\s+(?:status|level)`)
	hourlyToolRe      = regexp.MustCompile(`(?i)per\s+hour|cost\s+to\s+run|kwh|aux(?:iliary)?\s+heat\s+(?:kick|engage|come|turn|at)|defrost`)
	outdoorTempArgRe  = regexp.MustCompile(`(?i)(?:\bat|when\s+it(?:'|’)?s)\s+(-?\d+)\s*(?:°|degrees)?\s*f?\b`)
	psiArgRe          = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*psig?\b`)
	lineTempArgRe     = regexp.MustCompile(`(?i)line(?:\s+temp(?:erature)?)?\s*(?:of|at|is|reads?)?\s*(-?\d+(?:\.\d+)?)`)
	refrigerantArgRe  = regexp.MustCompile(`(?i)\br[- ]?(410a|454b|22|32|134a)\b`)
	coolingWordRe     = regexp.MustCompile(`(?i)\bcool(?:ing)?\b|\ba/?c\b|air\s+condition`)
)

// runTools executes every tool the query's vocabulary calls for and
// returns the results in execution order. An empty slice means the
// question needs no computed data.
func (s *AgentService) runTools(query string, settings map[string]interface{}) []toolResult {
	lower := strings.ToLower(query)
	var results []toolResult

	if containsAny(lower, "balance point", "balancepoint", "switchover", "aux", "auxiliary") {
		result := calc.CalculateBalancePoint(balancePointInputFromSettings(settings))
		results = append(results, toolResult{
			Name:   "calculateBalancePoint",
			Output: calc.FormatBalancePointResponse(result, 20),
		})
	}
	if chargeToolRe.MatchString(lower) {
		results = append(results, chargeTool(query, lower))
	}
	if setbackToolRe.MatchString(lower) {
		results = append(results, setbackTool(settings))
	}
	if comparisonToolRe.MatchString(lower) {
		results = append(results, comparisonTool(settings))
	}
	if sizingToolRe.MatchString(lower) {
		results = append(results, sizingTool(lower, settings))
	}
	if performanceToolRe.MatchString(lower) {
		results = append(results, performanceTool(settings))
	}
	if hourlyToolRe.MatchString(lower) {
		results = append(results, energyImpactTool(query, lower, settings))
	}
	return results
}

// formatToolResults renders executed tools for the prompt, one block per
// tool.
func formatToolResults(results []toolResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s:\n%s\n", r.Name, r.Output)
	}
	return b.String()
}

// balancePointInputFromSettings builds solver input from stored settings,
// defaulting each field the way the balance point page does.
func balancePointInputFromSettings(settings map[string]interface{}) jouletypes.BalancePointInput {
	in := jouletypes.BalancePointInput{
		SquareFeet:       2000,
		CeilingHeight:    8,
		InsulationLevel:  1.0,
		HSPF2:            9,
		Tons:             3,
		TargetIndoorTemp: 68,
	}
	if v, ok := settingFloat(settings, "squareFeet"); ok {
		in.SquareFeet = v
	}
	if v, ok := settingFloat(settings, "ceilingHeight"); ok {
		in.CeilingHeight = v
	}
	if v, ok := settingFloat(settings, "insulationLevel"); ok {
		in.InsulationLevel = v
	}
	if v, ok := settingFloat(settings, "hspf2"); ok {
		in.HSPF2 = v
	}
	if v, ok := settingFloat(settings, "capacity"); ok {
		in.Tons = v / 12.0
		in.Capacity = v
	}
	if v, ok := settingFloat(settings, "winterThermostat"); ok {
		in.TargetIndoorTemp = v
		in.WinterThermostat = v
	}
	return in
}

// chargeTool diagnoses a charge reading when the question carries a line
// pressure and line temperature, otherwise it reports charging targets
// for the refrigerant at the stated outdoor conditions.
func chargeTool(query, lower string) toolResult {
	refrigerant := "R-410A"
	if m := refrigerantArgRe.FindStringSubmatch(query); m != nil {
		refrigerant = "R-" + strings.ToUpper(m[1])
	}

	var pressure float64
	if m := psiArgRe.FindStringSubmatch(query); m != nil {
		pressure, _ = strconv.ParseFloat(m[1], 64)
	}
	var lineTemp float64
	hasLineTemp := false
	if m := lineTempArgRe.FindStringSubmatch(query); m != nil {
		lineTemp, _ = strconv.ParseFloat(m[1], 64)
		hasLineTemp = true
	}

	if pressure > 0 && hasLineTemp {
		method := jouletypes.MethodSubcooling
		if strings.Contains(lower, "superheat") {
			method = jouletypes.MethodSuperheat
		}
		diagnosis, err := calc.DiagnoseCharge(jouletypes.ChargeInput{
			Refrigerant:  refrigerant,
			Method:       method,
			LinePressure: pressure,
			LineTemp:     lineTemp,
		})
		if err != nil {
			return toolResult{Name: "diagnoseCharge", Output: fmt.Sprintf("Error: %v", err)}
		}
		return toolResult{Name: "diagnoseCharge", Output: formatChargeDiagnosis(diagnosis)}
	}

	outdoor := 85.0
	if m := outdoorTempArgRe.FindStringSubmatch(query); m != nil {
		outdoor, _ = strconv.ParseFloat(m[1], 64)
	}
	targets, err := calc.CalculateCharging(calc.ChargingParams{
		Refrigerant:       refrigerant,
		OutdoorTemp:       outdoor,
		DischargePressure: pressure,
	})
	if err != nil {
		return toolResult{Name: "calculateChargingTargets", Output: fmt.Sprintf("Error: %v", err)}
	}
	return toolResult{Name: "calculateChargingTargets", Output: calc.FormatChargingResponse(targets)}
}

func formatChargeDiagnosis(r *jouletypes.ChargeResult) string {
	label := "Subcooling"
	if r.Method == jouletypes.MethodSuperheat {
		label = "Superheat"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Charge Diagnosis (%s)**\n\n", label)
	fmt.Fprintf(&b, "• Saturation temp: %.1f°F\n", r.SaturationTemp)
	fmt.Fprintf(&b, "• Measured %s: %.1f°F (target %.1f°F)\n", strings.ToLower(label), r.Measured, r.Target)
	fmt.Fprintf(&b, "• Difference: %+.1f°F\n\n", r.Difference)
	fmt.Fprintf(&b, "**Status:** %s", r.Status)
	return b.String()
}

func setbackTool(settings map[string]interface{}) toolResult {
	var p calc.SetbackParams
	if v, ok := settingFloat(settings, "winterThermostat"); ok {
		p.WinterTemp = v
	}
	if v, ok := settingFloat(settings, "summerThermostat"); ok {
		p.SummerTemp = v
	}
	savings := calc.CalculateSetbackSavings(p)
	return toolResult{Name: "estimateSetbackSavings", Output: calc.FormatSetbackResponse(savings)}
}

func comparisonTool(settings map[string]interface{}) toolResult {
	var p calc.ComparisonParams
	if v, ok := settingFloat(settings, "squareFeet"); ok {
		p.SquareFeet = v
	}
	if v, ok := settingFloat(settings, "winterThermostat"); ok {
		p.WinterTemp = v
	}
	if v, ok := settingFloat(settings, "utilityCost"); ok {
		p.ElectricRate = v
	}
	if v, ok := settingFloat(settings, "gasCost"); ok {
		p.GasRate = v
	}
	if v, ok := settingFloat(settings, "hspf2"); ok {
		p.HSPF = v
	}
	if v, ok := settingFloat(settings, "afue"); ok {
		p.AFUE = v
	}
	result := calc.CompareHeatingSystems(p)
	return toolResult{Name: "compareHeatingSystems", Output: calc.FormatComparisonResponse(result)}
}

func sizingTool(lower string, settings map[string]interface{}) toolResult {
	p := calc.SizingParams{InsulationQuality: "average", ClimateZone: "moderate"}
	if v, ok := settingFloat(settings, "squareFeet"); ok {
		p.SquareFeet = v
	}
	if v, ok := settingFloat(settings, "ceilingHeight"); ok {
		p.CeilingHeight = v
	}
	if v, ok := settingFloat(settings, "insulationLevel"); ok {
		p.InsulationQuality = insulationQualityWord(v)
	}
	if strings.Contains(lower, "cold climate") {
		p.ClimateZone = "cold"
	} else if strings.Contains(lower, "hot climate") {
		p.ClimateZone = "hot"
	}
	result := calc.CalculateSystemSizing(p)
	return toolResult{Name: "calculateSystemSizing", Output: formatSizingResult(result)}
}

// insulationQualityWord maps the numeric insulation level onto the sizing
// engine's quality words. Lower levels mean tighter homes.
func insulationQualityWord(level float64) string {
	switch {
	case level <= 0:
		return "average"
	case level <= 0.55:
		return "excellent"
	case level <= 0.85:
		return "good"
	case level <= 1.15:
		return "average"
	default:
		return "poor"
	}
}

func formatSizingResult(r calc.SizingResult) string {
	var b strings.Builder
	b.WriteString("**System Sizing Estimate (simplified Manual J)**\n\n")
	fmt.Fprintf(&b, "• Heating load: %s BTU/hr (%.1f tons)\n", formatWithCommas(r.HeatingLoad), r.HeatingTons)
	fmt.Fprintf(&b, "• Cooling load: %s BTU/hr (%.1f tons, includes %s BTU/hr internal gains)\n\n", formatWithCommas(r.CoolingLoad), r.CoolingTons, formatWithCommas(r.InternalGains))
	fmt.Fprintf(&b, "**Recommended size: %.1f tons**\n\n", r.RecommendedTons)
	b.WriteString("A full Manual J calculation by a contractor accounts for windows, orientation, and infiltration.")
	return b.String()
}

func performanceTool(settings map[string]interface{}) toolResult {
	sqft := settingFloatOr(settings, "squareFeet", 2000)
	ceiling := settingFloatOr(settings, "ceilingHeight", 8)
	insulation := settingFloatOr(settings, "insulationLevel", 1.0)
	hspf2 := settingFloatOr(settings, "hspf2", 9)
	tons := settingFloatOr(settings, "capacity", 36) / 12.0

	metrics := calc.CalculatePerformanceMetrics(sqft, ceiling, insulation, hspf2, tons)
	return toolResult{Name: "calculatePerformanceMetrics", Output: calc.FormatPerformanceResponse(metrics, sqft)}
}

// energyImpactTool models one hour of heating or cooling at the outdoor
// temperature named in the question. Heating defaults to an average
// winter hour and cooling to a design summer hour; homes above the
// weather station get a lapse-rate temperature correction.
func energyImpactTool(query, lower string, settings map[string]interface{}) toolResult {
	cooling := coolingWordRe.MatchString(lower)

	outdoor := 35.0
	if cooling {
		outdoor = 95.0
	}
	if m := outdoorTempArgRe.FindStringSubmatch(query); m != nil {
		outdoor, _ = strconv.ParseFloat(m[1], 64)
	}
	const humidity = 50.0

	if elevation := settingFloatOr(settings, "homeElevation", 0); elevation >= 10 {
		adjusted := calc.AdjustForecastForElevation(
			[]calc.ForecastHour{{Temp: outdoor, Humidity: humidity}}, elevation, 0)
		outdoor = adjusted[0].Temp
	}

	sqft := settingFloatOr(settings, "squareFeet", 2000)
	insulation := settingFloatOr(settings, "insulationLevel", 1.0)
	homeShape := settingFloatOr(settings, "homeShape", 1.0)
	ceiling := settingFloatOr(settings, "ceilingHeight", 8)
	tons := settingFloatOr(settings, "capacity", 36) / 12.0
	rate := settingFloatOr(settings, "utilityCost", 0.15)

	heatLossBtu := calc.EstimateDesignHeatLoss(sqft, insulation, homeShape, ceiling)

	if cooling {
		perf := calc.ComputeHourlyCoolingPerformance(calc.CoolingInput{
			Tons:          tons,
			IndoorTemp:    settingFloatOr(settings, "summerThermostat", 75),
			HeatLossBtu:   heatLossBtu,
			SEER2:         settingFloatOr(settings, "efficiency", 15),
			SolarExposure: settingFloatOr(settings, "solarExposure", 1.0),
		}, outdoor, humidity)
		return toolResult{Name: "calculateEnergyImpact", Output: formatHourlyCooling(perf, outdoor, rate)}
	}

	hspf2 := settingFloatOr(settings, "hspf2", 9)
	cop := hspf2 / 3.4
	perf := calc.ComputeHourlyPerformance(calc.HourlyInput{
		Tons:            tons,
		IndoorTemp:      settingFloatOr(settings, "winterThermostat", 68),
		HeatLossBtu:     heatLossBtu,
		CompressorPower: tons * calc.KWPerTonOutput / cop,
	}, outdoor, humidity)
	return toolResult{Name: "calculateEnergyImpact", Output: formatHourlyHeating(perf, outdoor, rate)}
}

func formatHourlyHeating(p calc.HourlyPerformance, outdoor, rate float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Estimated Performance at %.0f°F**\n\n", outdoor)
	fmt.Fprintf(&b, "• Compressor draw: %.2f kW\n", p.ElectricalKw)
	fmt.Fprintf(&b, "• Runtime: %.0f%%\n", p.Runtime)
	if p.AuxKw > 0 {
		fmt.Fprintf(&b, "• Aux heat: %.2f kW\n", p.AuxKw)
	}
	if p.DefrostPenalty > 1 {
		fmt.Fprintf(&b, "• Defrost penalty: +%.0f%%\n", (p.DefrostPenalty-1)*100)
	}
	fmt.Fprintf(&b, "\n**Cost: ~$%.2f/hour** at $%.3f/kWh", (p.ElectricalKw+p.AuxKw)*rate, rate)
	return b.String()
}

func formatHourlyCooling(p calc.CoolingPerformance, outdoor, rate float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Cooling Performance at %.0f°F**\n\n", outdoor)
	fmt.Fprintf(&b, "• Electrical draw: %.2f kW\n", p.ElectricalKw)
	fmt.Fprintf(&b, "• Runtime: %.0f%%\n", p.Runtime)
	if p.CapacityDerate < 1 {
		fmt.Fprintf(&b, "• Capacity derate: %.0f%%\n", p.CapacityDerate*100)
	}
	if p.DeficitBtu > 0 {
		fmt.Fprintf(&b, "• Capacity deficit: %s BTU/hr (indoor may drift to %.0f°F)\n", formatWithCommas(p.DeficitBtu), p.ActualIndoorTemp)
	}
	fmt.Fprintf(&b, "\n**Cost: ~$%.2f/hour** at $%.3f/kWh", p.ElectricalKw*rate, rate)
	return b.String()
}

// settingFloatOr reads a numeric setting with a fallback default.
func settingFloatOr(settings map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := settingFloat(settings, key); ok {
		return v
	}
	return fallback
}
