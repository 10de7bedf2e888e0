package calc

import (
	"fmt"
	"math"
	"strings"
)

// ComparisonParams describes the systems and rates to compare.
type ComparisonParams struct {
	SquareFeet      float64
	WinterTemp      float64
	AvgWinterOutdoor float64
	ElectricRate    float64
	GasRate         float64
	HSPF            float64
	AFUE            float64 // percent, e.g. 95
}

// ComparisonResult is the heat pump vs gas furnace cost comparison.
type ComparisonResult struct {
	HPMonthlyCost  float64
	GasMonthlyCost float64
	MonthlySavings float64
	AnnualSavings  float64
	Winner         string
	HPCOP          float64
}

// CompareHeatingSystems estimates monthly heating cost for a heat pump and
// a gas furnace at average winter conditions, assuming average insulation
// and a five-month heating season.
func CompareHeatingSystems(p ComparisonParams) ComparisonResult {
	if p.SquareFeet <= 0 {
		p.SquareFeet = 2000
	}
	if p.WinterTemp <= 0 {
		p.WinterTemp = 68
	}
	if p.AvgWinterOutdoor == 0 {
		p.AvgWinterOutdoor = 35
	}
	if p.ElectricRate <= 0 {
		p.ElectricRate = 0.12
	}
	if p.GasRate <= 0 {
		p.GasRate = 1.2
	}
	if p.HSPF <= 0 {
		p.HSPF = 9
	}
	if p.AFUE <= 0 {
		p.AFUE = 95
	}

	avgCOP := p.HSPF / 3.4
	heatLossFactor := p.SquareFeet * heatLossPerCubicFt
	avgHeatLoad := heatLossFactor * (p.WinterTemp - p.AvgWinterOutdoor)

	hpElectricUse := avgHeatLoad / (avgCOP * 3412) // kWh per hour
	hpMonthly := math.Round(hpElectricUse * 24 * p.ElectricRate * 30)

	gasEfficiency := p.AFUE / 100
	gasThermPerHour := (avgHeatLoad / gasEfficiency) / 100000
	gasMonthly := math.Round(gasThermPerHour * 24 * p.GasRate * 30)

	monthlySavings := gasMonthly - hpMonthly
	winner := "Gas Furnace"
	if monthlySavings > 0 {
		winner = "Heat Pump"
	}

	return ComparisonResult{
		HPMonthlyCost:  hpMonthly,
		GasMonthlyCost: gasMonthly,
		MonthlySavings: monthlySavings,
		AnnualSavings:  monthlySavings * 5,
		Winner:         winner,
		HPCOP:          math.Round(avgCOP*100) / 100,
	}
}

// FormatComparisonResponse renders a system comparison as markdown.
func FormatComparisonResponse(r ComparisonResult) string {
	var b strings.Builder
	b.WriteString("**Heat Pump vs Gas Furnace Comparison**\n\n")
	fmt.Fprintf(&b, "• **Heat Pump:** $%.0f/month (COP: %.2f)\n", r.HPMonthlyCost, r.HPCOP)
	fmt.Fprintf(&b, "• **Gas Furnace:** $%.0f/month\n\n", r.GasMonthlyCost)
	fmt.Fprintf(&b, "**%s wins!**\n", r.Winner)
	fmt.Fprintf(&b, "Monthly savings: $%.0f\n", math.Abs(r.MonthlySavings))
	fmt.Fprintf(&b, "Annual savings: $%.0f over 5 winter months\n\n", math.Abs(r.AnnualSavings))

	switch {
	case r.MonthlySavings > 50:
		b.WriteString("✓ Significant savings with heat pump")
	case r.MonthlySavings > 0:
		b.WriteString("✓ Heat pump is more economical")
	default:
		b.WriteString("⚠️ Gas furnace may be more cost-effective in your area")
	}
	return b.String()
}
