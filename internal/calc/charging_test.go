package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

func TestGetSaturationTemp_TableRows(t *testing.T) {
	tests := []struct {
		refrigerant string
		psig        float64
		expected    float64
	}{
		{"R-410A", 118.5, 40},
		{"R-410A", 318.0, 100},
		{"R-22", 68.6, 40},
		{"R-134a", 35.0, 40},
		{"R-32", 135.0, 40},
	}

	for _, tt := range tests {
		temp, err := GetSaturationTemp(tt.refrigerant, tt.psig)
		require.NoError(t, err, "%s at %.1f psig", tt.refrigerant, tt.psig)
		assert.InDelta(t, tt.expected, temp, 0.01)
	}
}

func TestGetSaturationTemp_Interpolation(t *testing.T) {
	// Midway between the 40F (118.5 psig) and 45F (130 psig) rows
	temp, err := GetSaturationTemp("R-410A", 124.25)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, temp, 0.01)
}

func TestGetSaturationTemp_NameNormalization(t *testing.T) {
	for _, name := range []string{"R-410A", "r410a", "R410A", "r-410a"} {
		_, err := GetSaturationTemp(name, 200)
		assert.NoError(t, err, name)
	}
}

func TestGetSaturationTemp_UnknownRefrigerant(t *testing.T) {
	_, err := GetSaturationTemp("R-999", 100)
	assert.ErrorIs(t, err, ErrUnknownRefrigerant)
}

func TestGetSaturationTemp_PressureOutOfRange(t *testing.T) {
	_, err := GetSaturationTemp("R-410A", 10)
	assert.ErrorIs(t, err, ErrPressureOutOfRange)

	_, err = GetSaturationTemp("R-410A", 900)
	assert.ErrorIs(t, err, ErrPressureOutOfRange)
}

func TestDiagnoseCharge_BandEdges(t *testing.T) {
	// 318 psig R-410A saturates at exactly 100F, so measured subcooling
	// is 100 minus the liquid line temperature. Target is 10F.
	tests := []struct {
		name     string
		lineTemp float64
		expected jouletypes.ChargeStatus
	}{
		{"difference +5.01 is significantly undercharged", 84.99, jouletypes.ChargeSignificantlyUndercharged},
		{"difference exactly +5.0 is slightly undercharged", 85.0, jouletypes.ChargeSlightlyUndercharged},
		{"difference +2.01 is slightly undercharged", 87.99, jouletypes.ChargeSlightlyUndercharged},
		{"difference exactly +2.0 is good", 88.0, jouletypes.ChargeGood},
		{"difference zero is good", 90.0, jouletypes.ChargeGood},
		{"difference exactly -2.0 is good", 92.0, jouletypes.ChargeGood},
		{"difference -2.01 is slightly overcharged", 92.01, jouletypes.ChargeSlightlyOvercharged},
		{"difference exactly -5.0 is slightly overcharged", 95.0, jouletypes.ChargeSlightlyOvercharged},
		{"difference -5.01 is significantly overcharged", 95.01, jouletypes.ChargeSignificantlyOvercharged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DiagnoseCharge(jouletypes.ChargeInput{
				Refrigerant:   "R-410A",
				Method:        jouletypes.MethodSubcooling,
				LinePressure:  318,
				LineTemp:      tt.lineTemp,
				TargetSubcool: 10,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Status)
		})
	}
}

func TestDiagnoseCharge_SuperheatMethod(t *testing.T) {
	// 130 psig R-410A suction saturates at 45F; a 58F suction line gives
	// 13F superheat against a 10F target, 3F over.
	result, err := DiagnoseCharge(jouletypes.ChargeInput{
		Refrigerant:     "R-410A",
		Method:          jouletypes.MethodSuperheat,
		LinePressure:    130,
		LineTemp:        58,
		TargetSuperheat: 10,
	})

	require.NoError(t, err)
	assert.InDelta(t, 13.0, result.Measured, 0.01)
	assert.InDelta(t, 3.0, result.Difference, 0.01)
	assert.Equal(t, jouletypes.ChargeSlightlyUndercharged, result.Status)
}

func TestDiagnoseCharge_PTMissIsTerminal(t *testing.T) {
	_, err := DiagnoseCharge(jouletypes.ChargeInput{
		Refrigerant:  "R-410A",
		Method:       jouletypes.MethodSubcooling,
		LinePressure: 5,
		LineTemp:     80,
	})
	assert.ErrorIs(t, err, ErrPressureOutOfRange)
}

func TestCalculateCharging_Targets(t *testing.T) {
	targets, err := CalculateCharging(ChargingParams{
		Refrigerant:       "R-410A",
		OutdoorTemp:       85,
		DischargePressure: 318,
	})

	require.NoError(t, err)
	assert.Equal(t, "R-410A", targets.Refrigerant)
	// Liquid line target is ambient plus 15F approach
	assert.Equal(t, 100.0, targets.TargetLiquidLineTemp)
	// Saturation 100F minus target liquid line 100F
	assert.Equal(t, 0.0, targets.TargetSubcooling)
	assert.Equal(t, 10.0, targets.TargetSuperheat)
}

func TestCalculateCharging_ActualSubcoolingStatus(t *testing.T) {
	targets, err := CalculateCharging(ChargingParams{
		Refrigerant:       "R-410A",
		OutdoorTemp:       75,
		DischargePressure: 318,
		LiquidLineTemp:    88,
	})

	require.NoError(t, err)
	require.NotNil(t, targets.ActualSubcooling)
	// Saturation 100F, target liquid 90F: target subcool 10F, actual 12F
	assert.Equal(t, 10.0, targets.TargetSubcooling)
	assert.Equal(t, 12.0, *targets.ActualSubcooling)
	assert.Equal(t, "optimal", targets.SubcoolingStatus)
}

func TestCalculateCharging_Defaults(t *testing.T) {
	targets, err := CalculateCharging(ChargingParams{})
	require.NoError(t, err)
	assert.Equal(t, "R-410A", targets.Refrigerant)
	assert.Equal(t, 85.0, targets.OutdoorTemp)
	assert.Equal(t, 75.0, targets.IndoorTemp)
}
