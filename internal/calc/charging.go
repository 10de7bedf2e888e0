package calc

import (
	"fmt"
	"math"
	"strings"

	"joule/pkg/jouletypes"
)

// ptPoint is one pressure-temperature saturation table row: gauge pressure
// in psig and the corresponding saturation temperature in F.
type ptPoint struct {
	psig  float64
	tempF float64
}

// Saturation tables per refrigerant (dew point values), sorted by pressure.
var ptTables = map[string][]ptPoint{
	"R-410A": {
		{48.0, 0}, {55.0, 5}, {62.0, 10}, {70.0, 15}, {78.0, 20},
		{87.0, 25}, {97.0, 30}, {107.5, 35}, {118.5, 40}, {130.0, 45},
		{142.5, 50}, {155.5, 55}, {169.5, 60}, {184.5, 65}, {200.5, 70},
		{217.5, 75}, {235.5, 80}, {254.5, 85}, {274.5, 90}, {295.5, 95},
		{318.0, 100}, {341.5, 105}, {366.5, 110}, {392.5, 115}, {420.0, 120},
		{449.0, 125}, {479.5, 130},
	},
	"R-22": {
		{24.0, 0}, {28.3, 5}, {32.8, 10}, {37.8, 15}, {43.1, 20},
		{48.8, 25}, {54.9, 30}, {61.5, 35}, {68.6, 40}, {76.1, 45},
		{84.1, 50}, {92.6, 55}, {101.6, 60}, {111.2, 65}, {121.4, 70},
		{132.2, 75}, {143.7, 80}, {155.7, 85}, {168.4, 90}, {181.8, 95},
		{195.9, 100}, {210.8, 105}, {226.4, 110}, {242.8, 115}, {260.0, 120},
		{278.1, 125}, {297.0, 130},
	},
	"R-32": {
		{51.0, 0}, {60.0, 5}, {69.0, 10}, {78.0, 15}, {88.0, 20},
		{99.0, 25}, {110.0, 30}, {122.0, 35}, {135.0, 40}, {148.0, 45},
		{162.0, 50}, {177.0, 55}, {193.0, 60}, {210.0, 65}, {228.0, 70},
		{247.0, 75}, {267.0, 80}, {288.0, 85}, {310.0, 90}, {333.0, 95},
		{358.0, 100}, {384.0, 105}, {411.0, 110}, {439.0, 115}, {469.0, 120},
		{500.0, 125}, {533.0, 130},
	},
	"R-134A": {
		{6.5, 0}, {9.1, 5}, {11.9, 10}, {15.0, 15}, {18.4, 20},
		{22.1, 25}, {26.1, 30}, {30.4, 35}, {35.0, 40}, {40.1, 45},
		{45.4, 50}, {51.2, 55}, {57.4, 60}, {64.0, 65}, {71.1, 70},
		{78.7, 75}, {86.7, 80}, {95.2, 85}, {104.3, 90}, {114.0, 95},
		{124.2, 100}, {135.0, 105}, {146.4, 110}, {158.4, 115}, {171.1, 120},
		{184.6, 125}, {198.7, 130},
	},
}

// normalizeRefrigerant maps user spellings ("r410a", "R410A", "r-410a")
// onto the table keys.
func normalizeRefrigerant(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "")
	if n != "" && !strings.HasPrefix(n, "R-") {
		n = strings.TrimPrefix(n, "R")
		n = "R-" + n
	}
	return n
}

// GetSaturationTemp returns the saturation temperature for a refrigerant
// at the given gauge pressure, linearly interpolated between table rows.
// A pressure outside the table is a terminal error for that reading.
func GetSaturationTemp(refrigerant string, psig float64) (float64, error) {
	table, ok := ptTables[normalizeRefrigerant(refrigerant)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRefrigerant, refrigerant)
	}

	if psig < table[0].psig || psig > table[len(table)-1].psig {
		return 0, fmt.Errorf("%w: %.1f psig for %s", ErrPressureOutOfRange, psig, refrigerant)
	}

	for i := 0; i < len(table)-1; i++ {
		lo, hi := table[i], table[i+1]
		if psig >= lo.psig && psig <= hi.psig {
			t := (psig - lo.psig) / (hi.psig - lo.psig)
			return lo.tempF + t*(hi.tempF-lo.tempF), nil
		}
	}
	return table[len(table)-1].tempF, nil
}

// GetTargetLiquidLineTemp returns the expected liquid line temperature for
// a correctly charged system at the given outdoor temperature, using a
// typical condenser approach of 15F over ambient.
func GetTargetLiquidLineTemp(_ string, outdoorTemp float64) float64 {
	return outdoorTemp + 15
}

// DiagnoseCharge classifies one subcooling or superheat reading into the
// five charge bands. Difference is measured minus target; the band edges
// use strict comparisons, so a difference of exactly +5.0 classifies as
// slightly undercharged and +2.0 as good.
func DiagnoseCharge(in jouletypes.ChargeInput) (*jouletypes.ChargeResult, error) {
	satTemp, err := GetSaturationTemp(in.Refrigerant, in.LinePressure)
	if err != nil {
		return nil, err
	}

	var measured, target float64
	switch in.Method {
	case jouletypes.MethodSuperheat:
		measured = in.LineTemp - satTemp
		target = in.TargetSuperheat
		if target == 0 {
			target = 10
		}
	default:
		measured = satTemp - in.LineTemp
		target = in.TargetSubcool
		if target == 0 {
			target = 10
		}
	}

	diff := measured - target
	var status jouletypes.ChargeStatus
	switch {
	case diff > 5:
		status = jouletypes.ChargeSignificantlyUndercharged
	case diff > 2:
		status = jouletypes.ChargeSlightlyUndercharged
	case diff < -5:
		status = jouletypes.ChargeSignificantlyOvercharged
	case diff < -2:
		status = jouletypes.ChargeSlightlyOvercharged
	default:
		status = jouletypes.ChargeGood
	}

	return &jouletypes.ChargeResult{
		SaturationTemp: satTemp,
		Measured:       measured,
		Target:         target,
		Difference:     diff,
		Status:         status,
		Method:         in.Method,
	}, nil
}

// ChargingTargets holds the recommended subcooling/superheat targets for a
// refrigerant at the ambient conditions, plus actual readings when line
// measurements were supplied.
type ChargingTargets struct {
	Refrigerant          string
	OutdoorTemp          float64
	IndoorTemp           float64
	TargetSubcooling     float64
	TargetLiquidLineTemp float64
	TargetSuperheat      float64
	ActualSubcooling     *float64
	SubcoolingStatus     string
	ActualSuperheat      *float64
	SuperheatStatus      string
}

// ChargingParams are the optional line readings for CalculateCharging.
type ChargingParams struct {
	Refrigerant       string
	OutdoorTemp       float64
	IndoorTemp        float64
	LiquidLineTemp    float64
	SuctionLineTemp   float64
	DischargePressure float64
	SuctionPressure   float64
}

// CalculateCharging computes target subcooling and superheat for a charging
// session and, when line readings are present, the actual values with an
// optimal/undercharged/overcharged status (2F tolerance either side).
func CalculateCharging(p ChargingParams) (*ChargingTargets, error) {
	refrigerant := normalizeRefrigerant(p.Refrigerant)
	if refrigerant == "R-" || refrigerant == "" {
		refrigerant = "R-410A"
	}
	outdoor := p.OutdoorTemp
	if outdoor == 0 {
		outdoor = 85
	}
	indoor := p.IndoorTemp
	if indoor == 0 {
		indoor = 75
	}

	targets := &ChargingTargets{
		Refrigerant:     refrigerant,
		OutdoorTemp:     outdoor,
		IndoorTemp:      indoor,
		TargetSuperheat: 10,
	}

	targetLiquid := GetTargetLiquidLineTemp(refrigerant, outdoor)
	targets.TargetLiquidLineTemp = math.Round(targetLiquid)

	if p.DischargePressure > 0 {
		satTemp, err := GetSaturationTemp(refrigerant, p.DischargePressure)
		if err != nil {
			return nil, err
		}
		targets.TargetSubcooling = math.Round(satTemp - targetLiquid)

		if p.LiquidLineTemp != 0 {
			actual := math.Round(satTemp - p.LiquidLineTemp)
			targets.ActualSubcooling = &actual
			switch {
			case math.Abs(actual-targets.TargetSubcooling) <= 2:
				targets.SubcoolingStatus = "optimal"
			case actual < targets.TargetSubcooling-2:
				targets.SubcoolingStatus = "undercharged"
			default:
				targets.SubcoolingStatus = "overcharged"
			}
		}
	}

	if p.SuctionPressure > 0 && p.SuctionLineTemp != 0 {
		satTemp, err := GetSaturationTemp(refrigerant, p.SuctionPressure)
		if err != nil {
			return nil, err
		}
		actual := math.Round(p.SuctionLineTemp - satTemp)
		targets.ActualSuperheat = &actual
		switch {
		case math.Abs(actual-targets.TargetSuperheat) <= 2:
			targets.SuperheatStatus = "optimal"
		case actual < targets.TargetSuperheat-2:
			targets.SuperheatStatus = "overcharged"
		default:
			targets.SuperheatStatus = "undercharged"
		}
	}

	return targets, nil
}

// FormatChargingResponse renders charging targets as markdown.
func FormatChargingResponse(t *ChargingTargets) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s Charging Targets** (Outdoor: %.0f°F)\n\n", t.Refrigerant, t.OutdoorTemp)

	if t.TargetSubcooling != 0 {
		fmt.Fprintf(&b, "• **Target Subcooling:** %.0f°F\n", t.TargetSubcooling)
		fmt.Fprintf(&b, "  (Liquid line should be %.0f°F cooler than saturation temp)\n\n", t.TargetSubcooling)
	}
	fmt.Fprintf(&b, "• **Target Superheat:** %.0f°F\n", t.TargetSuperheat)
	fmt.Fprintf(&b, "  (Suction line should be %.0f°F warmer than saturation temp)\n\n", t.TargetSuperheat)

	if t.SubcoolingStatus != "" {
		fmt.Fprintf(&b, "**Subcooling Status:** %s\n", t.SubcoolingStatus)
		if t.SubcoolingStatus == "undercharged" {
			b.WriteString("⚠️ Add refrigerant slowly\n")
		}
		if t.SubcoolingStatus == "overcharged" {
			b.WriteString("⚠️ Recover refrigerant\n")
		}
	}
	if t.SuperheatStatus != "" {
		fmt.Fprintf(&b, "**Superheat Status:** %s\n", t.SuperheatStatus)
		if t.SuperheatStatus == "undercharged" {
			b.WriteString("⚠️ Add refrigerant slowly\n")
		}
		if t.SuperheatStatus == "overcharged" {
			b.WriteString("⚠️ Recover refrigerant\n")
		}
	}

	return b.String()
}
