package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

func TestCalculateHeatLoss_ExplicitFactor(t *testing.T) {
	result, err := CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp:    20,
		IndoorTemp:     68,
		HeatLossFactor: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, 24000.0, result.HeatLossBtuPerHour)
	assert.Equal(t, 500.0, result.FactorUsed)
	assert.Equal(t, "explicit", result.FactorSource)
	assert.Equal(t, 48.0, result.DeltaT)
}

func TestCalculateHeatLoss_ThermalFactorSource(t *testing.T) {
	result, err := CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp:   30,
		IndoorTemp:    70,
		ThermalFactor: 0.25,
		SquareFeet:    2000,
	})

	require.NoError(t, err)
	assert.Equal(t, "thermal", result.FactorSource)
	assert.Equal(t, 500.0, result.FactorUsed)
	assert.Equal(t, 20000.0, result.HeatLossBtuPerHour)
}

func TestCalculateHeatLoss_SquareFootageEstimate(t *testing.T) {
	result, err := CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp: 40,
		IndoorTemp:  68,
		SquareFeet:  1000,
	})

	require.NoError(t, err)
	assert.Equal(t, "estimated", result.FactorSource)
	// 1000 sq ft x 8 ft x 0.018 = 144 BTU/hr/F
	assert.Equal(t, 144.0, result.FactorUsed)
}

func TestCalculateHeatLoss_SourcePriority(t *testing.T) {
	// Explicit factor wins over thermal factor and square footage
	result, err := CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp:    20,
		IndoorTemp:     68,
		HeatLossFactor: 300,
		ThermalFactor:  0.25,
		SquareFeet:     2000,
	})

	require.NoError(t, err)
	assert.Equal(t, "explicit", result.FactorSource)
	assert.Equal(t, 300.0, result.FactorUsed)
}

func TestCalculateHeatLoss_MissingInputsIsError(t *testing.T) {
	_, err := CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp: 20,
		IndoorTemp:  68,
	})
	assert.ErrorIs(t, err, ErrMissingHeatLossInput)
}

func TestCalculateHeatLoss_Linearity(t *testing.T) {
	// Zero delta-T means zero loss for any temperature
	for _, temp := range []float64{10, 32, 68, 95} {
		result, err := CalculateHeatLoss(jouletypes.HeatLossInput{
			OutdoorTemp:    temp,
			IndoorTemp:     temp,
			HeatLossFactor: 400,
		})
		require.NoError(t, err)
		assert.Zero(t, result.HeatLossBtuPerHour, "at %v degrees", temp)
	}

	// Doubling delta-T doubles the loss
	a, err := CalculateHeatLoss(jouletypes.HeatLossInput{OutdoorTemp: 58, IndoorTemp: 68, HeatLossFactor: 400})
	require.NoError(t, err)
	b, err := CalculateHeatLoss(jouletypes.HeatLossInput{OutdoorTemp: 48, IndoorTemp: 68, HeatLossFactor: 400})
	require.NoError(t, err)
	assert.Equal(t, a.HeatLossBtuPerHour*2, b.HeatLossBtuPerHour)
}

func TestCalculateHeatLoss_DefaultIndoorTemp(t *testing.T) {
	result, err := CalculateHeatLoss(jouletypes.HeatLossInput{
		OutdoorTemp:    20,
		HeatLossFactor: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 48.0, result.DeltaT)
}

func TestEstimateDesignHeatLoss(t *testing.T) {
	// 2000 sq ft, average insulation, typical shape, 8 ft ceilings
	loss := EstimateDesignHeatLoss(2000, 1.0, 0.9, 8)
	assert.Equal(t, 41000.0, loss)

	// 9 ft ceilings add 10%
	taller := EstimateDesignHeatLoss(2000, 1.0, 0.9, 9)
	assert.Greater(t, taller, loss)

	// Invalid inputs degrade to zero
	assert.Zero(t, EstimateDesignHeatLoss(0, 1.0, 0.9, 8))
	assert.Zero(t, EstimateDesignHeatLoss(2000, 0, 0.9, 8))
}
