package calc

import (
	"fmt"
	"math"
	"strings"

	"joule/pkg/jouletypes"
)

const (
	minCapacityFactor = 0.65

	// Derating and COP slopes relative to the 47F rating point.
	capacityLossPerDegF = 0.012
	copSlopePerDegF     = 0.01
	copFloor            = 1.5

	heatLossPerCubicFt = 0.018
)

type balanceRow struct {
	outdoorTemp      float64
	thermalOutputBtu float64
	heatLossBtu      float64
	cop              float64
	surplus          float64
}

// CalculateBalancePoint finds the outdoor temperature where derated heat
// pump output equals building heat loss. When no crossover exists inside
// the table the estimate tiers are tried in strict order: slope
// extrapolation, average-rate extrapolation, fixed offset heuristic, and a
// capacity-to-loss ratio estimate. The result is never NaN or Inf; a nil
// BalancePoint means no usable estimate at all.
func CalculateBalancePoint(in jouletypes.BalancePointInput) jouletypes.BalancePointResult {
	tons := in.Tons
	if tons <= 0 && in.Capacity > 0 {
		// capacity is kBTU/hr; 12 kBTU/hr per ton
		tons = in.Capacity / 12.0
	}
	if tons <= 0 {
		tons = 3
	}

	squareFeet := in.SquareFeet
	if squareFeet <= 0 {
		squareFeet = 2000
	}
	ceilingHeight := in.CeilingHeight
	if ceilingHeight <= 0 {
		ceilingHeight = 8
	}
	insulation := in.InsulationLevel
	if insulation <= 0 {
		insulation = 1.0
	}
	hspf2 := in.HSPF2
	if hspf2 <= 0 {
		hspf2 = 9
	}
	targetIndoor := in.TargetIndoorTemp
	if targetIndoor <= 0 {
		targetIndoor = in.WinterThermostat
	}
	if targetIndoor <= 0 {
		targetIndoor = 68
	}
	design := in.DesignOutdoorTemp
	if design == 0 {
		design = 20
	}

	volume := squareFeet * ceilingHeight
	btuLossPerDegF := volume * heatLossPerCubicFt * insulation
	ratedCapacityBtu := tons * 12000

	var data []balanceRow
	for temp := 60.0; temp >= design; temp-- {
		capacityFactor := math.Max(minCapacityFactor, 1.0-(47-temp)*capacityLossPerDegF)
		output := ratedCapacityBtu * capacityFactor

		deltaT := targetIndoor - temp
		loss := btuLossPerDegF * deltaT

		avgCOP := hspf2 / 3.4
		cop := math.Max(copFloor, avgCOP*(1+(temp-47)*copSlopePerDegF))

		data = append(data, balanceRow{
			outdoorTemp:      temp,
			thermalOutputBtu: output,
			heatLossBtu:      loss,
			cop:              cop,
			surplus:          output - loss,
		})
	}

	balancePoint := findCrossover(data)
	if balancePoint == nil && len(data) > 0 {
		balancePoint = extrapolateBalancePoint(data, design, targetIndoor, btuLossPerDegF)
	}

	result := jouletypes.BalancePointResult{
		HeatLossFactor: math.Round(btuLossPerDegF),
	}

	// Aux heat requirement at the design temperature
	for _, row := range data {
		if row.outdoorTemp == design {
			result.AuxHeatAtDesign = math.Round(math.Max(0, -row.surplus))
			cop := math.Round(row.cop*100) / 100
			result.COPAtDesign = &cop
			break
		}
	}

	if balancePoint != nil {
		rounded := math.Round(*balancePoint*10) / 10
		result.BalancePoint = &rounded
	}
	result.Interpretation = interpretBalancePoint(result.BalancePoint)

	return result
}

// findCrossover locates the first sign change of surplus and interpolates
// between the bracketing degrees.
func findCrossover(data []balanceRow) *float64 {
	for i := 0; i < len(data)-1; i++ {
		curr, next := data[i], data[i+1]
		if curr.surplus >= 0 && next.surplus < 0 {
			t := curr.surplus / (curr.surplus - next.surplus)
			bp := curr.outdoorTemp + t*(next.outdoorTemp-curr.outdoorTemp)
			return &bp
		}
	}
	return nil
}

// extrapolateBalancePoint handles tables with no internal crossover.
// Oversized systems (surplus everywhere positive) extrapolate below the
// design temperature; undersized systems extrapolate above 60F. A slope
// too close to zero falls back to the average rate of change, then to a
// fixed offset so we never divide by a negligible number.
func extrapolateBalancePoint(data []balanceRow, design, targetIndoor, btuLossPerDegF float64) *float64 {
	first := data[0]
	last := data[len(data)-1]

	var bp float64
	switch {
	case first.surplus > 0 && last.surplus > 0:
		// Oversized: balance point is below design temp
		if len(data) >= 2 {
			secondLast := data[len(data)-2]
			slope := (last.surplus - secondLast.surplus) / (last.outdoorTemp - secondLast.outdoorTemp)
			if slope < 0 && math.Abs(slope) > 0.001 {
				bp = last.outdoorTemp - last.surplus/slope
			} else {
				avgRate := (first.surplus - last.surplus) / (first.outdoorTemp - last.outdoorTemp)
				if avgRate < 0 && math.Abs(avgRate) > 0.001 {
					bp = last.outdoorTemp - last.surplus/avgRate
				} else {
					bp = design - 10
				}
			}
		} else {
			bp = design - 10
		}
	case first.surplus < 0 && last.surplus < 0:
		// Undersized: balance point is above 60F
		if len(data) >= 2 {
			second := data[1]
			slope := (second.surplus - first.surplus) / (second.outdoorTemp - first.outdoorTemp)
			if slope > 0 && math.Abs(slope) > 0.001 {
				bp = first.outdoorTemp - first.surplus/slope
			} else {
				avgRate := (last.surplus - first.surplus) / (last.outdoorTemp - first.outdoorTemp)
				if avgRate > 0 && math.Abs(avgRate) > 0.001 {
					bp = first.outdoorTemp - first.surplus/avgRate
				} else {
					bp = 70
				}
			}
		} else {
			bp = 70
		}
	default:
		// Sign change the scan missed; estimate from average capacity vs
		// loss rate and clamp to a sane range.
		var sum float64
		for _, row := range data {
			sum += row.thermalOutputBtu
		}
		avgCapacity := sum / float64(len(data))
		bp = targetIndoor - avgCapacity/btuLossPerDegF
		bp = math.Max(0, math.Min(80, bp))
	}

	if math.IsNaN(bp) || math.IsInf(bp, 0) {
		return nil
	}
	return &bp
}

func interpretBalancePoint(bp *float64) string {
	if bp == nil {
		return "Unable to calculate - check your system settings"
	}
	switch {
	case *bp <= 25:
		return "Lower balance point. The heat pump is well-sized for your home and minimal aux heat is needed."
	case *bp <= 35:
		return "Moderate balance point. Aux heat will help on colder days; the system is reasonably sized."
	default:
		return "Higher balance point. Aux heat will engage more often in winter; consider a larger or more efficient unit."
	}
}

// FormatBalancePointResponse renders the solver result as markdown. A nil
// balance point asks the user for the missing system details.
func FormatBalancePointResponse(result jouletypes.BalancePointResult, designOutdoorTemp float64) string {
	if result.BalancePoint == nil {
		return "I need your system details to calculate the balance point. Please set your square footage, HSPF rating, and system capacity in Settings first."
	}
	if designOutdoorTemp == 0 {
		designOutdoorTemp = 20
	}

	cop := 0.0
	if result.COPAtDesign != nil {
		cop = *result.COPAtDesign
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your system's balance point is **%.1f°F**, the outdoor temperature where your heat pump's output equals your home's heat loss.\n\n", *result.BalancePoint)
	b.WriteString("**Key metrics:**\n")
	fmt.Fprintf(&b, "• Balance point: %.1f°F\n", *result.BalancePoint)
	fmt.Fprintf(&b, "• Heat loss rate: %.0f BTU/hr per °F\n", result.HeatLossFactor)
	fmt.Fprintf(&b, "• COP at %.0f°F design: %.2f\n", designOutdoorTemp, cop)
	fmt.Fprintf(&b, "• Aux heat needed at %.0f°F: %.0f BTU/hr\n\n", designOutdoorTemp, result.AuxHeatAtDesign)
	b.WriteString("**What this means:**\n")
	b.WriteString(result.Interpretation)
	fmt.Fprintf(&b, "\n\nBelow %.1f°F, your heat pump alone can't keep up, and auxiliary heat (electric strips or gas furnace backup) will engage to maintain comfort.", *result.BalancePoint)
	return b.String()
}
