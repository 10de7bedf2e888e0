package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

func TestAnalysisService_EmptyReads(t *testing.T) {
	a := NewAnalysisService("", nil)
	require.NoError(t, a.Initialize())

	assert.Nil(t, a.Estimate())
	assert.Nil(t, a.Location())
	assert.Empty(t, a.Recommendations())
}

func TestAnalysisService_EstimateAndLocationRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.json")

	a := NewAnalysisService(path, nil)
	require.NoError(t, a.Initialize())
	require.NoError(t, a.SetEstimate(&jouletypes.AnnualEstimate{
		HeatingCost: 820,
		CoolingCost: 310,
		TotalCost:   1130,
		HDD:         3400,
		CDD:         1100,
	}))
	require.NoError(t, a.SetLocation(&jouletypes.Location{City: "Blairsville", State: "GA"}))

	reloaded := NewAnalysisService(path, nil)
	require.NoError(t, reloaded.Initialize())

	estimate := reloaded.Estimate()
	require.NotNil(t, estimate)
	assert.Equal(t, 820.0, estimate.HeatingCost)
	assert.Equal(t, 1130.0, estimate.TotalCost)

	location := reloaded.Location()
	require.NotNil(t, location)
	assert.Equal(t, "Blairsville", location.City)
}

func TestAnalysisService_EstimateReturnsCopy(t *testing.T) {
	a := NewAnalysisService("", nil)
	require.NoError(t, a.SetEstimate(&jouletypes.AnnualEstimate{TotalCost: 1000}))

	first := a.Estimate()
	first.TotalCost = 0
	assert.Equal(t, 1000.0, a.Estimate().TotalCost)
}

func TestAnalysisService_RecommendationsFromFactoryThresholds(t *testing.T) {
	a := NewAnalysisService("", NewThermostatService(""))

	recs := a.Recommendations()
	require.Len(t, recs, 2)
	assert.Equal(t, "Raise Heat Differential", recs[0].Title)
	assert.Equal(t, "Raise Cool Differential", recs[1].Title)
	for _, rec := range recs {
		assert.Positive(t, rec.SavingsEstimate)
	}
}

func TestAnalysisService_NoRecommendationsWhenOptimized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermostat.yaml")
	thermostat := NewThermostatService(path)

	doc := DefaultThermostatSettings()
	doc.Thresholds.HeatDifferential = 1.0
	doc.Thresholds.CoolDifferential = 1.0
	require.NoError(t, thermostat.Save(doc))

	a := NewAnalysisService("", thermostat)
	assert.Empty(t, a.Recommendations())
}

func TestAnalysisService_PipelineRecommendationsComeFirst(t *testing.T) {
	a := NewAnalysisService("", NewThermostatService(""))
	require.NoError(t, a.SetRecommendations([]jouletypes.Recommendation{
		{Title: "Lower winter setpoint", Message: "Dropping from 72°F to 70°F saves about $65/year", SavingsEstimate: 65},
	}))

	recs := a.Recommendations()
	require.Len(t, recs, 3)
	assert.Equal(t, "Lower winter setpoint", recs[0].Title)
}
