package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

func TestCalculateBalancePoint_CrossoverInterpolation(t *testing.T) {
	// Leaky oversized-loss home: surplus changes sign inside the table,
	// so the balance point comes from linear interpolation.
	result := CalculateBalancePoint(jouletypes.BalancePointInput{
		Tons:             2.5,
		SquareFeet:       3500,
		CeilingHeight:    9,
		InsulationLevel:  1.4,
		HSPF2:            9,
		WinterThermostat: 68,
	})

	require.NotNil(t, result.BalancePoint)
	assert.Greater(t, *result.BalancePoint, 20.0)
	assert.Less(t, *result.BalancePoint, 60.0)
	assert.NotEmpty(t, result.Interpretation)
}

func TestCalculateBalancePoint_CapacityMonotonicity(t *testing.T) {
	base := jouletypes.BalancePointInput{
		SquareFeet:       3500,
		CeilingHeight:    9,
		InsulationLevel:  1.4,
		HSPF2:            9,
		WinterThermostat: 68,
	}

	small := base
	small.Tons = 2.5
	large := base
	large.Tons = 4

	smallResult := CalculateBalancePoint(small)
	largeResult := CalculateBalancePoint(large)

	require.NotNil(t, smallResult.BalancePoint)
	require.NotNil(t, largeResult.BalancePoint)
	// Bigger systems have lower balance points
	assert.LessOrEqual(t, *largeResult.BalancePoint, *smallResult.BalancePoint)
}

func TestCalculateBalancePoint_OversizedFallsBelowDesign(t *testing.T) {
	// Typical 3-ton system in an average 2000 sq ft home keeps a positive
	// surplus across the whole table; the fixed-offset tier lands at
	// design minus 10.
	result := CalculateBalancePoint(jouletypes.BalancePointInput{
		Tons:              3,
		SquareFeet:        2000,
		CeilingHeight:     8,
		InsulationLevel:   1.0,
		HSPF2:             9,
		WinterThermostat:  68,
		DesignOutdoorTemp: 20,
	})

	require.NotNil(t, result.BalancePoint)
	assert.Equal(t, 10.0, *result.BalancePoint)
	assert.Equal(t, 288.0, result.HeatLossFactor)
}

func TestCalculateBalancePoint_GrosslyOversizedNonNull(t *testing.T) {
	result := CalculateBalancePoint(jouletypes.BalancePointInput{
		Tons:              10,
		SquareFeet:        600,
		CeilingHeight:     8,
		InsulationLevel:   0.5,
		HSPF2:             10,
		WinterThermostat:  68,
		DesignOutdoorTemp: 20,
	})

	require.NotNil(t, result.BalancePoint)
	assert.Less(t, *result.BalancePoint, 20.0)
}

func TestCalculateBalancePoint_UndersizedSystem(t *testing.T) {
	result := CalculateBalancePoint(jouletypes.BalancePointInput{
		Tons:             1,
		SquareFeet:       5000,
		CeilingHeight:    10,
		InsulationLevel:  1.4,
		HSPF2:            8,
		WinterThermostat: 72,
	})

	require.NotNil(t, result.BalancePoint)
	assert.Greater(t, *result.BalancePoint, 60.0)
}

func TestCalculateBalancePoint_CapacityToTonsConversion(t *testing.T) {
	fromTons := CalculateBalancePoint(jouletypes.BalancePointInput{
		Tons: 2.5, SquareFeet: 3500, CeilingHeight: 9, InsulationLevel: 1.4, HSPF2: 9, WinterThermostat: 68,
	})
	fromCapacity := CalculateBalancePoint(jouletypes.BalancePointInput{
		Capacity: 30, SquareFeet: 3500, CeilingHeight: 9, InsulationLevel: 1.4, HSPF2: 9, WinterThermostat: 68,
	})

	require.NotNil(t, fromTons.BalancePoint)
	require.NotNil(t, fromCapacity.BalancePoint)
	assert.Equal(t, *fromTons.BalancePoint, *fromCapacity.BalancePoint)
}

func TestCalculateBalancePoint_Defaults(t *testing.T) {
	// All-zero input falls back to the 3-ton, 2000 sq ft defaults
	result := CalculateBalancePoint(jouletypes.BalancePointInput{})
	require.NotNil(t, result.BalancePoint)
	require.NotNil(t, result.COPAtDesign)
	assert.GreaterOrEqual(t, *result.COPAtDesign, 1.5)
}

func TestInterpretBalancePoint_Bands(t *testing.T) {
	low := 20.0
	moderate := 30.0
	high := 40.0

	assert.Contains(t, interpretBalancePoint(&low), "Lower balance point")
	assert.Contains(t, interpretBalancePoint(&moderate), "Moderate balance point")
	assert.Contains(t, interpretBalancePoint(&high), "Higher balance point")
	assert.Contains(t, interpretBalancePoint(nil), "Unable to calculate")
}

func TestFormatBalancePointResponse_NilAsksForDetails(t *testing.T) {
	msg := FormatBalancePointResponse(jouletypes.BalancePointResult{}, 20)
	assert.Contains(t, msg, "I need your system details")
}

func TestFormatBalancePointResponse_IncludesMetrics(t *testing.T) {
	result := CalculateBalancePoint(jouletypes.BalancePointInput{
		Tons: 2.5, SquareFeet: 3500, CeilingHeight: 9, InsulationLevel: 1.4, HSPF2: 9, WinterThermostat: 68,
	})
	msg := FormatBalancePointResponse(result, 20)
	assert.Contains(t, msg, "balance point")
	assert.Contains(t, msg, "Heat loss rate")
	assert.Contains(t, msg, "Aux heat needed")
}
