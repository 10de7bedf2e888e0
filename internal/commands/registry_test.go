package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

func settingCommand(action string, value interface{}) jouletypes.ParsedCommand {
	return jouletypes.ParsedCommand{Action: action, Value: value, IsCommand: true}
}

func TestApplySettingCommand_UnifiedManager(t *testing.T) {
	settings := newFakeSettings(nil)
	d := testDispatcher(Config{Settings: settings})
	c := &capture{}

	handled := d.Dispatch(settingCommand(jouletypes.ActionSetHSPF, 10.5), c.callbacks())

	assert.True(t, handled)
	require.Len(t, settings.sets, 1)
	assert.Equal(t, "hspf2", settings.sets[0].Key)
	assert.Equal(t, 10.5, settings.sets[0].Value)
	assert.Equal(t, "AskJoule", settings.sets[0].Source)
	assert.Equal(t, "Set hspf via Ask Joule", settings.sets[0].Comment)
	// The change callback fires in addition to the store write.
	require.Len(t, c.changes, 1)
	assert.Equal(t, "hspf2", c.changes[0].Key)
	assert.Equal(t, "✓ HSPF set to 10.5", c.lastMessage())
	assert.Equal(t, jouletypes.StatusSuccess, c.lastStatus())
}

func TestApplySettingCommand_UnifiedManagerFailure(t *testing.T) {
	settings := newFakeSettings(nil)
	settings.failSet = errors.New("Winter thermostat must be between 45 and 85")
	d := testDispatcher(Config{Settings: settings})
	c := &capture{}

	handled := d.Dispatch(settingCommand(jouletypes.ActionSetWinterTemp, 90), c.callbacks())

	assert.True(t, handled)
	assert.Equal(t, "❌ Winter thermostat must be between 45 and 85", c.lastMessage())
	assert.Equal(t, jouletypes.StatusError, c.lastStatus())
	assert.Empty(t, c.changes)
}

func TestApplySettingCommand_PrefixAndUnit(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		value   interface{}
		message string
	}{
		{"utility cost", jouletypes.ActionSetUtilityCost, 0.12, "✓ Utility cost set to $0.12/kWh"},
		{"gas rate", "setGasRate", 1.45, "✓ Gas rate set to $1.45/therm"},
		{"square feet", jouletypes.ActionSetSquareFeet, 1800, "✓ Home size set to 1800 sq ft"},
		{"elevation", jouletypes.ActionSetHomeElevation, 5280, "✓ Home elevation set to 5280 ft"},
		{"manual heat loss", jouletypes.ActionSetManualHeatLoss, 450.0, "✓ Manual heat loss set to 450 BTU/hr/°F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDispatcher(Config{Settings: newFakeSettings(nil)})
			c := &capture{}

			handled := d.Dispatch(settingCommand(tt.action, tt.value), c.callbacks())

			assert.True(t, handled)
			assert.Equal(t, tt.message, c.lastMessage())
		})
	}
}

func TestApplySettingCommand_UseRawDisplaysOriginalWord(t *testing.T) {
	d := testDispatcher(Config{})
	c := &capture{}

	cmd := settingCommand(jouletypes.ActionSetInsulationLevel, 0.65)
	cmd.Raw = "good"
	handled := d.Dispatch(cmd, c.callbacks())

	assert.True(t, handled)
	require.Len(t, c.changes, 1)
	assert.Equal(t, 0.65, c.changes[0].Value)
	assert.Equal(t, "✓ Insulation set to good", c.lastMessage())
}

func TestApplySettingCommand_AlsoSetMirrorsCapacity(t *testing.T) {
	d := testDispatcher(Config{})
	c := &capture{}

	handled := d.Dispatch(settingCommand(jouletypes.ActionSetCapacity, 36.0), c.callbacks())

	assert.True(t, handled)
	require.Len(t, c.changes, 2)
	assert.Equal(t, "capacity", c.changes[0].Key)
	assert.Equal(t, "coolingCapacity", c.changes[1].Key)
	assert.Equal(t, 36.0, c.changes[1].Value)
	assert.Equal(t, "✓ Capacity set to 36k BTU", c.lastMessage())
}

func TestApplySettingCommand_AlsoDisableMutualExclusion(t *testing.T) {
	d := testDispatcher(Config{})
	c := &capture{}

	handled := d.Dispatch(settingCommand(jouletypes.ActionUseManualHeatLoss, true), c.callbacks())

	assert.True(t, handled)
	require.Len(t, c.changes, 3)
	assert.Equal(t, "useManualHeatLoss", c.changes[0].Key)
	assert.Equal(t, true, c.changes[0].Value)
	assert.Equal(t, "useCalculatedHeatLoss", c.changes[1].Key)
	assert.Equal(t, false, c.changes[1].Value)
	assert.Equal(t, "useAnalyzerHeatLoss", c.changes[2].Key)
	assert.Equal(t, false, c.changes[2].Value)
	assert.Equal(t, "✓ Use manual heat loss set to enabled", c.lastMessage())
}

func TestApplySettingCommand_BooleanDisabledWording(t *testing.T) {
	d := testDispatcher(Config{})
	c := &capture{}

	handled := d.Dispatch(settingCommand(jouletypes.ActionSetUseElectricAuxHeat, false), c.callbacks())

	assert.True(t, handled)
	assert.Equal(t, "✓ Electric aux heat set to disabled", c.lastMessage())
}

func TestApplySettingCommand_NoCallbackConnected(t *testing.T) {
	d := testDispatcher(Config{})
	c := &capture{}
	cb := c.callbacks()
	cb.OnSettingChange = nil

	handled := d.Dispatch(settingCommand(jouletypes.ActionSetSquareFeet, 2000), cb)

	assert.True(t, handled)
	assert.Equal(t, "I would set home size to 2000 sq ft, but settings updates aren't connected.", c.lastMessage())
	assert.Equal(t, jouletypes.StatusError, c.lastStatus())
}

func TestSettingCommandConfigInvariants(t *testing.T) {
	for action := range settingCommands {
		cfg, ok := SettingCommandConfigFor(action)
		require.True(t, ok)
		assert.NotEmpty(t, cfg.Key, "action %s", action)
		assert.NotEmpty(t, cfg.Label, "action %s", action)
		for _, other := range cfg.AlsoSet {
			assert.NotEqual(t, cfg.Key, other, "AlsoSet self-reference in %s", action)
		}
		for _, other := range cfg.AlsoDisable {
			assert.NotEqual(t, cfg.Key, other, "AlsoDisable self-reference in %s", action)
		}
	}
}
