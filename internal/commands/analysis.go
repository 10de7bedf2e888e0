package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"joule/internal/calc"
	"joule/pkg/jouletypes"
)

// runAnalysis handles undo, the what-if scenarios, and the analysis
// queries that read the derived annual estimate. When the estimate is
// missing, each handler reports which specific input is absent. Returns
// false when the action is not an analysis query.
func (d *Dispatcher) runAnalysis(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	switch parsed.Action {
	case jouletypes.ActionUndo:
		if d.undo == nil {
			d.output(cb, "Undo is not available here.", jouletypes.StatusError)
			return true
		}
		if d.undo() {
			d.output(cb, "✓ Undid last change", jouletypes.StatusSuccess)
		} else {
			d.output(cb, "No change to undo.", jouletypes.StatusError)
		}
		return true

	case jouletypes.ActionWhatIfHSPF:
		estimate := d.estimate()
		currentHSPF := d.settingFloat("hspf2", 0)
		if estimate == nil || currentHSPF == 0 {
			d.output(cb, "Set your location and current HSPF2 to calculate what-if scenarios.", jouletypes.StatusInfo)
			return true
		}
		newHSPF := valueFloat(parsed.Value)
		ratio := newHSPF / currentHSPF
		newCost := estimate.HeatingCost / ratio
		savings := estimate.HeatingCost - newCost
		d.output(cb, fmt.Sprintf("With %s HSPF2: Heating cost would be $%d/year (save $%d)",
			formatSettingValue(newHSPF), int(math.Round(newCost)), int(math.Round(savings))), jouletypes.StatusInfo)
		return true

	case jouletypes.ActionWhatIfSEER:
		estimate := d.estimate()
		currentSEER := d.settingFloat("efficiency", 0)
		if estimate == nil || currentSEER == 0 {
			d.output(cb, "Set your location and current SEER2 to calculate what-if scenarios.", jouletypes.StatusInfo)
			return true
		}
		newSEER := valueFloat(parsed.Value)
		ratio := newSEER / currentSEER
		newCost := estimate.CoolingCost / ratio
		savings := estimate.CoolingCost - newCost
		d.output(cb, fmt.Sprintf("With %s SEER2: Cooling cost would be $%d/year (save $%d)",
			formatSettingValue(newSEER), int(math.Round(newCost)), int(math.Round(savings))), jouletypes.StatusInfo)
		return true

	case jouletypes.ActionShowSavings:
		recs := d.recommendations()
		if len(recs) > 0 {
			top := recs[0]
			d.output(cb, fmt.Sprintf("💡 %s: %s", top.Title, top.Message), jouletypes.StatusInfo)
		} else {
			d.output(cb, "Great news! Your system is already well-optimized. Check Settings for minor improvements.", jouletypes.StatusInfo)
		}
		return true

	case jouletypes.ActionShowScore:
		hspf := d.settingFloat("hspf2", 0)
		seer := d.settingFloat("efficiency", 0)
		if hspf == 0 || seer == 0 {
			d.output(cb, "Complete your system settings to see your Joule Score!", jouletypes.StatusInfo)
			return true
		}
		score := math.Max(1, math.Min(100, 70+(hspf-8)*2+(seer-14)*1.2))
		d.output(cb, fmt.Sprintf("🎯 Your Joule Score: %d/100 (HSPF: %.1f, SEER: %.1f)",
			int(math.Round(score)), hspf, seer), jouletypes.StatusSuccess)
		return true

	case jouletypes.ActionSystemStatus:
		return d.reportSystemStatus(cb)

	case jouletypes.ActionExplainBill:
		return d.explainBill(cb)

	case jouletypes.ActionBreakEven:
		estimate := d.estimate()
		recs := d.recommendations()
		if estimate == nil || len(recs) == 0 {
			d.output(cb, "Set your location and system details to calculate payback period.", jouletypes.StatusInfo)
			return true
		}
		var totalSavings float64
		for _, r := range recs {
			totalSavings += r.SavingsEstimate
		}
		if totalSavings <= 0 {
			d.output(cb, "Great news! Your system is already well-optimized. Check Settings for minor improvements.", jouletypes.StatusInfo)
			return true
		}
		years := parsed.Cost / totalSavings
		d.output(cb, fmt.Sprintf("With $%s upgrade saving $%d/year: Break-even in %.1f years",
			formatWithCommas(int(parsed.Cost)), int(math.Round(totalSavings)), years), jouletypes.StatusInfo)
		return true

	case jouletypes.ActionCalcHeatLoss:
		return d.reportHeatLoss(parsed, cb)
	}
	return false
}

func (d *Dispatcher) reportSystemStatus(cb jouletypes.DispatchCallbacks) bool {
	estimate := d.estimate()
	hspf := d.settingFloat("hspf2", 0)
	seer := d.settingFloat("efficiency", 0)

	if hspf != 0 && estimate != nil {
		status := []string{
			fmt.Sprintf("System: %s HSPF2 / %s SEER2", formatSettingValue(hspf), formatSettingValue(seer)),
			fmt.Sprintf("Annual cost: $%d", int(math.Round(estimate.TotalCost))),
		}
		if recs := d.recommendations(); len(recs) > 0 {
			status = append(status, fmt.Sprintf("💡 %d improvement(s) available", len(recs)))
		}
		d.output(cb, strings.Join(status, " • "), jouletypes.StatusInfo)
		return true
	}

	switch {
	case d.location() == nil:
		d.output(cb, "Set your location to see system status.", jouletypes.StatusInfo)
	case hspf == 0 && seer == 0:
		d.output(cb, "Set your system efficiency (HSPF2 and/or SEER2) to see status.", jouletypes.StatusInfo)
	case estimate == nil:
		d.output(cb, "Set your building details (square footage, insulation level, etc.) in Settings to calculate your annual costs.", jouletypes.StatusInfo)
	default:
		d.output(cb, "Unable to calculate status. Please check your settings.", jouletypes.StatusInfo)
	}
	return true
}

func (d *Dispatcher) explainBill(cb jouletypes.DispatchCallbacks) bool {
	estimate := d.estimate()
	location := d.location()
	if estimate == nil || location == nil {
		d.output(cb, "Set your location to analyze your bill.", jouletypes.StatusInfo)
		return true
	}

	var reasons []string
	if estimate.HDD > 5000 {
		reasons = append(reasons, fmt.Sprintf("cold climate (%s HDD)", formatSettingValue(estimate.HDD)))
	}
	if estimate.CDD > 2000 {
		reasons = append(reasons, fmt.Sprintf("hot climate (%s CDD)", formatSettingValue(estimate.CDD)))
	}
	if hspf := d.settingFloat("hspf2", 0); hspf != 0 && hspf < 9 {
		reasons = append(reasons, fmt.Sprintf("low HSPF2 (%s)", formatSettingValue(hspf)))
	}
	if d.settingFloat("insulationLevel", 0) > 1.1 {
		reasons = append(reasons, "poor insulation")
	}
	if estimate.AuxKwhIncluded > 1000 {
		reasons = append(reasons, "high aux heat usage")
	}

	if len(reasons) > 0 {
		d.output(cb, fmt.Sprintf("💡 Bill factors: %s. See recommendations for fixes!",
			strings.Join(reasons, ", ")), jouletypes.StatusInfo)
	} else {
		d.output(cb, fmt.Sprintf("Your costs look normal for %s. Annual: $%d",
			location.City, int(math.Round(estimate.TotalCost))), jouletypes.StatusInfo)
	}
	return true
}

func (d *Dispatcher) reportHeatLoss(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	var thermalFactor, heatLossFactor float64
	if estimate := d.estimate(); estimate != nil {
		if estimate.ThermalFactor != 0 {
			thermalFactor = estimate.ThermalFactor
		} else if estimate.HeatLossFactor != 0 {
			heatLossFactor = estimate.HeatLossFactor
		}
	}
	if thermalFactor == 0 && heatLossFactor == 0 {
		if tf := d.settingFloat("thermalFactor", 0); tf != 0 {
			thermalFactor = tf
		} else if hlf := d.settingFloat("heatLossFactor", 0); hlf != 0 {
			heatLossFactor = hlf
		}
	}

	indoorTemp := d.settingFloat("winterThermostat", 68)
	result, err := calc.CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp:    parsed.OutdoorTemp,
		IndoorTemp:     indoorTemp,
		HeatLossFactor: heatLossFactor,
		ThermalFactor:  thermalFactor,
		SquareFeet:     d.settingFloat("squareFeet", 0),
	})
	if err != nil {
		d.output(cb, fmt.Sprintf("❌ %s\n\nTo calculate heat loss, please:\n1. Upload your thermostat CSV data in the Performance Analyzer, or\n2. Set your square footage in Settings.",
			err.Error()), jouletypes.StatusError)
		return true
	}

	d.output(cb, calc.FormatHeatLossResponse(result, parsed.OutdoorTemp, indoorTemp), jouletypes.StatusSuccess)
	d.speak(cb, fmt.Sprintf("Your heat loss at %s degrees is %s BTU per hour.",
		formatSettingValue(parsed.OutdoorTemp), formatWithCommas(int(math.Round(result.HeatLossBtuPerHour)))))
	return true
}

func (d *Dispatcher) estimate() *jouletypes.AnnualEstimate {
	if d.analysis == nil {
		return nil
	}
	return d.analysis.Estimate()
}

func (d *Dispatcher) recommendations() []jouletypes.Recommendation {
	if d.analysis == nil {
		return nil
	}
	return d.analysis.Recommendations()
}

func (d *Dispatcher) location() *jouletypes.Location {
	if d.analysis == nil {
		return nil
	}
	return d.analysis.Location()
}

// formatWithCommas renders an integer with thousands separators.
func formatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
