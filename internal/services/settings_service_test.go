package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemorySettings(t *testing.T) *SettingsService {
	t.Helper()
	s := NewSettingsService("")
	require.NoError(t, s.Initialize())
	return s
}

func TestSettingsService_GetReturnsDefaults(t *testing.T) {
	s := newMemorySettings(t)

	v, ok := s.Get("capacity")
	require.True(t, ok)
	assert.EqualValues(t, 24, v)

	v, ok = s.Get("hspf2")
	require.True(t, ok)
	assert.EqualValues(t, 9.0, v)

	v, ok = s.Get("primarySystem")
	require.True(t, ok)
	assert.Equal(t, "heatPump", v)

	_, ok = s.Get("noSuchSetting")
	assert.False(t, ok)
}

func TestSettingsService_SetAndGet(t *testing.T) {
	s := newMemorySettings(t)

	require.NoError(t, s.Set("hspf2", 10.5, "AskJoule", "Set HSPF2 to 10.5"))

	v, ok := s.Get("hspf2")
	require.True(t, ok)
	assert.EqualValues(t, 10.5, v)
}

func TestSettingsService_ValidationMessages(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr string
	}{
		{"capacity not in list", "capacity", 25, "Capacity must be one of: 18, 24, 30, 36, 42, 48, 60"},
		{"cooling capacity not in list", "coolingCapacity", 12, "Cooling capacity must be one of: 18, 24, 30, 36, 42, 48, 60"},
		{"hspf2 too low", "hspf2", 5.9, "HSPF2 must be between 6 and 13"},
		{"hspf2 too high", "hspf2", 13.1, "HSPF2 must be between 6 and 13"},
		{"efficiency too low", "efficiency", 12.0, "Efficiency (SEER) must be between 13 and 22"},
		{"winter thermostat too low", "winterThermostat", 45.0, "Winter thermostat must be between 50 and 85°F"},
		{"summer thermostat too high", "summerThermostat", 90.0, "Summer thermostat must be between 50 and 85°F"},
		{"afue out of range", "afue", 1.2, "AFUE must be between 0.6 and 0.99"},
		{"square feet too small", "squareFeet", 50.0, "Square feet must be between 100 and 10,000"},
		{"insulation out of range", "insulationLevel", 2.5, "Insulation level must be between 0.3 and 2.0"},
		{"utility cost out of range", "utilityCost", 1.5, "Utility cost must be between $0.05 and $1.00 per kWh"},
		{"gas cost out of range", "gasCost", 0.1, "Gas cost must be between $0.50 and $5.00 per therm"},
		{"primary system unknown", "primarySystem", "boiler", "Primary system must be one of: heatPump, gasFurnace"},
		{"energy mode unknown", "energyMode", "both", "Energy mode must be one of: heating, cooling"},
		{"bool gets string", "useElectricAuxHeat", "yes", "Use electric aux heat must be true or false"},
		{"range gets non-number", "hspf2", "nine", "HSPF2 must be between 6 and 13"},
	}

	s := newMemorySettings(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set(tt.key, tt.value, "test", "")
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestSettingsService_BoundaryValuesAccepted(t *testing.T) {
	tests := []struct {
		key   string
		value interface{}
	}{
		{"winterThermostat", 50.0},
		{"winterThermostat", 85.0},
		{"hspf2", 6.0},
		{"hspf2", 13.0},
		{"efficiency", 13.0},
		{"efficiency", 22.0},
		{"capacity", 18},
		{"capacity", 60},
		{"afue", 0.6},
		{"afue", 0.99},
		{"homeElevation", -500.0},
		{"useElectricAuxHeat", false},
	}

	s := newMemorySettings(t)
	for _, tt := range tests {
		assert.NoError(t, s.Set(tt.key, tt.value, "test", ""), "%s=%v", tt.key, tt.value)
	}
}

func TestSettingsService_AnalyzerHeatLossAllowsNil(t *testing.T) {
	assert.NoError(t, ValidateSetting("analyzerHeatLoss", nil))
	assert.NoError(t, ValidateSetting("analyzerHeatLoss", 850.0))
	assert.Error(t, ValidateSetting("analyzerHeatLoss", -5.0))
}

func TestSettingsService_UnknownKeyAllowed(t *testing.T) {
	s := newMemorySettings(t)
	assert.NoError(t, s.Set("experimentalFlag", "on", "test", ""))
}

func TestSettingsService_SubscribeSeesPreviousValue(t *testing.T) {
	s := newMemorySettings(t)

	var got SettingChange
	s.Subscribe(func(change SettingChange) { got = change })

	require.NoError(t, s.Set("winterThermostat", 72.0, "AskJoule", "Set winter thermostat to 72"))

	assert.Equal(t, "winterThermostat", got.Key)
	assert.EqualValues(t, 72.0, got.Value)
	assert.EqualValues(t, 70.0, got.Previous)
	assert.Equal(t, "AskJoule", got.Source)
	assert.Equal(t, "Set winter thermostat to 72", got.Comment)
}

func TestSettingsService_InvalidSetDoesNotNotify(t *testing.T) {
	s := newMemorySettings(t)

	calls := 0
	s.Subscribe(func(SettingChange) { calls++ })

	require.Error(t, s.Set("hspf2", 20.0, "test", ""))
	assert.Zero(t, calls)
}

func TestSettingsService_Reset(t *testing.T) {
	s := newMemorySettings(t)

	require.NoError(t, s.Set("summerThermostat", 80.0, "test", ""))
	require.NoError(t, s.Reset("summerThermostat"))

	v, _ := s.Get("summerThermostat")
	assert.EqualValues(t, 74.0, v)

	err := s.Reset("noSuchSetting")
	require.Error(t, err)
	assert.Equal(t, "no default value for setting: noSuchSetting", err.Error())
}

func TestSettingsService_GetAllMergesDefaults(t *testing.T) {
	s := newMemorySettings(t)
	require.NoError(t, s.Set("squareFeet", 2200.0, "test", ""))

	all := s.GetAll()
	assert.EqualValues(t, 2200.0, all["squareFeet"])
	assert.EqualValues(t, 9.0, all["hspf2"])
	assert.Equal(t, "heating", all["energyMode"])
}

func TestSettingsService_PersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := NewSettingsService(path)
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Set("hspf2", 10.0, "test", ""))
	require.NoError(t, s.Set("primarySystem", "gasFurnace", "test", ""))

	reloaded := NewSettingsService(path)
	require.NoError(t, reloaded.Initialize())

	v, ok := reloaded.Get("hspf2")
	require.True(t, ok)
	assert.EqualValues(t, 10.0, v)

	v, ok = reloaded.Get("primarySystem")
	require.True(t, ok)
	assert.Equal(t, "gasFurnace", v)

	// Untouched keys still read their defaults.
	v, ok = reloaded.Get("gasCost")
	require.True(t, ok)
	assert.EqualValues(t, 1.2, v)
}
