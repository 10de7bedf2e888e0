package calc

import (
	"fmt"
	"math"
	"strings"

	"joule/pkg/jouletypes"
)

// CalculateHeatLoss computes building heat loss at a specific outdoor
// temperature. The heat-loss factor source is chosen in priority order:
// an explicit factor, thermalFactor x squareFeet, or a square-footage
// estimate assuming 8 ft ceilings. Missing all three is an error, never a
// zero default.
func CalculateHeatLoss(in jouletypes.HeatLossInput) (*jouletypes.HeatLossResult, error) {
	indoor := in.IndoorTemp
	if indoor == 0 {
		indoor = 68
	}

	var factor float64
	var source string
	switch {
	case in.HeatLossFactor > 0:
		factor = in.HeatLossFactor
		source = "explicit"
	case in.ThermalFactor > 0 && in.SquareFeet > 0:
		factor = in.ThermalFactor * in.SquareFeet
		source = "thermal"
	case in.SquareFeet > 0:
		factor = in.SquareFeet * 8 * heatLossPerCubicFt
		source = "estimated"
	default:
		return nil, ErrMissingHeatLossInput
	}

	deltaT := indoor - in.OutdoorTemp
	return &jouletypes.HeatLossResult{
		HeatLossBtuPerHour: math.Round(factor * deltaT),
		FactorUsed:         math.Round(factor),
		FactorSource:       source,
		DeltaT:             deltaT,
	}, nil
}

// FormatHeatLossResponse renders a heat loss result as markdown.
func FormatHeatLossResponse(result *jouletypes.HeatLossResult, outdoorTemp, indoorTemp float64) string {
	if indoorTemp == 0 {
		indoorTemp = 68
	}
	sourceLabel := map[string]string{
		"explicit":  "analyzed CSV data",
		"thermal":   "thermal factor from analyzed data",
		"estimated": "estimated from square footage",
	}[result.FactorSource]

	var b strings.Builder
	fmt.Fprintf(&b, "**Heat Loss at %.0f°F**\n\n", outdoorTemp)
	fmt.Fprintf(&b, "• **Heat Loss:** %s BTU/hr\n", groupThousands(result.HeatLossBtuPerHour))
	fmt.Fprintf(&b, "  (Indoor: %.0f°F, Outdoor: %.0f°F, ΔT: %.0f°F)\n\n", indoorTemp, outdoorTemp, result.DeltaT)
	fmt.Fprintf(&b, "• **Heat Loss Factor:** %s BTU/hr per °F\n", groupThousands(result.FactorUsed))
	fmt.Fprintf(&b, "\n*Calculated from %s*\n", sourceLabel)
	return b.String()
}

// groupThousands renders a rounded value with thousands separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", math.Abs(v))
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EstimateDesignHeatLoss estimates whole-house heat loss in BTU/hr at a
// 70F delta-T from square footage, insulation, shape, and ceiling height.
// Invalid inputs yield zero. The result is rounded to the nearest 1000.
func EstimateDesignHeatLoss(squareFeet, insulationLevel, homeShape, ceilingHeight float64) float64 {
	const baseBtuPerSqFt = 22.67
	if squareFeet <= 0 || insulationLevel <= 0 || homeShape <= 0 || ceilingHeight <= 0 {
		return 0
	}
	ceilingMultiplier := 1 + (ceilingHeight-8)*0.1
	raw := squareFeet * baseBtuPerSqFt * insulationLevel * homeShape * ceilingMultiplier
	return math.Round(raw/1000) * 1000
}
