package calc

import (
	"fmt"
	"math"
	"strings"
)

// SetbackParams describes a thermostat setback strategy.
type SetbackParams struct {
	WinterTemp   float64
	SummerTemp   float64
	SleepSetback float64
	AwaySetback  float64
	SleepHours   float64
	AwayHours    float64
}

// SetbackSavings is the estimated saving from a setback strategy.
type SetbackSavings struct {
	WinterSetback        float64
	SummerSetback        float64
	WinterMonthlySavings float64
	SummerMonthlySavings float64
	AnnualSavings        float64
	PaybackDays          int
}

// CalculateSetbackSavings estimates heating and cooling savings from sleep
// and away setbacks, assuming $150/mo winter and $120/mo summer baselines
// over a 5-month heating and 4-month cooling season.
func CalculateSetbackSavings(p SetbackParams) SetbackSavings {
	if p.WinterTemp <= 0 {
		p.WinterTemp = 68
	}
	if p.SummerTemp <= 0 {
		p.SummerTemp = 75
	}
	if p.SleepSetback <= 0 {
		p.SleepSetback = 4
	}
	if p.AwaySetback <= 0 {
		p.AwaySetback = 6
	}
	if p.SleepHours <= 0 {
		p.SleepHours = 8
	}
	if p.AwayHours <= 0 {
		p.AwayHours = 8
	}

	setbackHours := p.SleepHours + p.AwayHours
	avgSetback := (p.SleepHours*p.SleepSetback + p.AwayHours*p.AwaySetback) / setbackHours

	winterSavingsPercent := (avgSetback / p.WinterTemp) * 0.7
	winterMonthly := 150 * winterSavingsPercent

	summerSavingsPercent := (avgSetback / (95 - p.SummerTemp)) * 0.6
	summerMonthly := 120 * summerSavingsPercent

	return SetbackSavings{
		WinterSetback:        math.Round(avgSetback),
		SummerSetback:        math.Round(avgSetback),
		WinterMonthlySavings: math.Round(winterMonthly),
		SummerMonthlySavings: math.Round(summerMonthly),
		AnnualSavings:        math.Round(winterMonthly*5 + summerMonthly*4),
		PaybackDays:          0,
	}
}

// FormatSetbackResponse renders setback savings as markdown.
func FormatSetbackResponse(s SetbackSavings) string {
	var b strings.Builder
	b.WriteString("**Thermostat Setback Strategy Savings**\n\n")
	fmt.Fprintf(&b, "• **Winter setback:** %.0f°F → Save ~$%.0f/month\n", s.WinterSetback, s.WinterMonthlySavings)
	fmt.Fprintf(&b, "• **Summer setback:** %.0f°F → Save ~$%.0f/month\n\n", s.SummerSetback, s.SummerMonthlySavings)
	fmt.Fprintf(&b, "**Annual Savings:** ~$%.0f/year\n\n", s.AnnualSavings)
	b.WriteString("💡 **Recommended Schedule:**\n")
	fmt.Fprintf(&b, "- Sleep (8 hrs): Set back %.0f°F\n", s.WinterSetback)
	fmt.Fprintf(&b, "- Away (8 hrs): Set back %.0f°F\n", s.WinterSetback+2)
	b.WriteString("- Home: Normal temperature\n\n")
	b.WriteString("Smart thermostats can automate this - ROI typically under 1 year!")
	return b.String()
}
