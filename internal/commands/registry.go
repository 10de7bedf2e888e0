// Package commands implements the setting-command registry and the
// strict-priority dispatcher that executes parsed utterances. Handlers
// never touch storage or speech directly; every side effect goes through
// the injected callback surface or one of the narrow store interfaces.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// SettingsStore is the dispatcher's view of the unified settings
// repository. It is the single writer for registry-governed keys.
type SettingsStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, source, comment string) error
}

// settingCommands maps command actions to their declarative handling
// config. Entries with UseUnifiedManager write through the settings
// store; the rest notify the OnSettingChange callback only.
var settingCommands = map[string]jouletypes.SettingCommandConfig{
	jouletypes.ActionSetWinterTemp: {
		Key: "winterThermostat", Label: "Winter thermostat", Unit: "°F",
		UseUnifiedManager: true,
	},
	jouletypes.ActionSetSummerTemp: {
		Key: "summerThermostat", Label: "Summer thermostat", Unit: "°F",
		UseUnifiedManager: true,
	},
	jouletypes.ActionSetHSPF: {
		Key: "hspf2", Label: "HSPF",
		UseUnifiedManager: true,
	},
	jouletypes.ActionSetSEER: {
		Key: "efficiency", Label: "SEER",
		UseUnifiedManager: true,
	},
	jouletypes.ActionSetHomeElevation: {
		Key: "homeElevation", Label: "Home elevation", Unit: " ft",
		UseUnifiedManager: true,
	},
	jouletypes.ActionSetUtilityCost: {
		Key: "utilityCost", Label: "Utility cost", Unit: "/kWh", Prefix: "$",
		UseUnifiedManager: true,
	},
	"setElectricRate": {
		Key: "utilityCost", Label: "Electric rate", Unit: "/kWh", Prefix: "$",
	},
	"setGasRate": {
		Key: "gasCost", Label: "Gas rate", Unit: "/therm", Prefix: "$",
	},
	jouletypes.ActionSetSquareFeet: {
		Key: "squareFeet", Label: "Home size", Unit: " sq ft",
	},
	jouletypes.ActionSetInsulationLevel: {
		Key: "insulationLevel", Label: "Insulation",
		UseRaw: true,
	},
	jouletypes.ActionSetCapacity: {
		Key: "capacity", Label: "Capacity", Unit: "k BTU",
		AlsoSet: []string{"coolingCapacity"},
	},
	jouletypes.ActionSetAFUE: {
		Key: "afue", Label: "AFUE",
	},
	jouletypes.ActionSetCeilingHeight: {
		Key: "ceilingHeight", Label: "Ceiling height", Unit: " ft",
	},
	jouletypes.ActionSetHomeShape: {
		Key: "homeShape", Label: "Home shape",
	},
	jouletypes.ActionSetSolarExposure: {
		Key: "solarExposure", Label: "Solar exposure",
	},
	jouletypes.ActionSetEnergyMode: {
		Key: "energyMode", Label: "Energy mode",
	},
	jouletypes.ActionSetPrimarySystem: {
		Key: "primarySystem", Label: "Primary system",
	},
	jouletypes.ActionSetGasCost: {
		Key: "gasCost", Label: "Gas cost", Prefix: "$",
	},
	jouletypes.ActionSetCoolingSystem: {
		Key: "coolingSystem", Label: "Cooling system",
	},
	jouletypes.ActionSetCoolingCapacity: {
		Key: "coolingCapacity", Label: "Cooling capacity", Unit: "k BTU",
	},
	jouletypes.ActionSetUseElectricAuxHeat: {
		Key: "useElectricAuxHeat", Label: "Electric aux heat",
		IsBoolean: true,
	},
	jouletypes.ActionSetDetailedAnnualEst: {
		Key: "useDetailedAnnualEstimate", Label: "Detailed annual estimate",
		IsBoolean: true,
	},
	jouletypes.ActionUseManualHeatLoss: {
		Key: "useManualHeatLoss", Label: "Use manual heat loss",
		IsBoolean:   true,
		AlsoDisable: []string{"useCalculatedHeatLoss", "useAnalyzerHeatLoss"},
	},
	jouletypes.ActionUseCalculatedHeatLoss: {
		Key: "useCalculatedHeatLoss", Label: "Use calculated heat loss",
		IsBoolean:   true,
		AlsoDisable: []string{"useManualHeatLoss", "useAnalyzerHeatLoss"},
	},
	jouletypes.ActionUseAnalyzerHeatLoss: {
		Key: "useAnalyzerHeatLoss", Label: "Use analyzer heat loss",
		IsBoolean:   true,
		AlsoDisable: []string{"useManualHeatLoss", "useCalculatedHeatLoss"},
	},
	jouletypes.ActionSetManualHeatLoss: {
		Key: "manualHeatLoss", Label: "Manual heat loss", Unit: " BTU/hr/°F",
		UseUnifiedManager: true,
	},
	jouletypes.ActionSetAnalyzerHeatLoss: {
		Key: "analyzerHeatLoss", Label: "Analyzer heat loss", Unit: " BTU/hr/°F",
		UseUnifiedManager: true,
	},
}

// SettingCommandConfigFor exposes a registry entry for inspection.
func SettingCommandConfigFor(action string) (jouletypes.SettingCommandConfig, bool) {
	cfg, ok := settingCommands[action]
	return cfg, ok
}

// applySettingCommand executes a registry-driven setting command. Returns
// false when the action has no registry entry so the chain can continue.
func (d *Dispatcher) applySettingCommand(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	config, ok := settingCommands[parsed.Action]
	if !ok {
		return false
	}

	displayValue := formatSettingValue(parsed.Value)
	if config.UseRaw && parsed.Raw != "" {
		displayValue = parsed.Raw
	}
	var formattedValue string
	if config.IsBoolean {
		if enabled, _ := parsed.Value.(bool); enabled {
			formattedValue = "enabled"
		} else {
			formattedValue = "disabled"
		}
	} else {
		formattedValue = config.Prefix + displayValue + config.Unit
	}

	comment := fmt.Sprintf("Set %s via Ask Joule", strings.ToLower(config.Label))

	if config.UseUnifiedManager {
		if d.settings == nil {
			d.output(cb, fmt.Sprintf("❌ Failed to set %s", strings.ToLower(config.Label)), jouletypes.StatusError)
			return true
		}
		if err := d.settings.Set(config.Key, parsed.Value, sourceAskJoule, comment); err != nil {
			d.output(cb, fmt.Sprintf("❌ %s", err.Error()), jouletypes.StatusError)
			return true
		}
		if cb.OnSettingChange != nil {
			cb.OnSettingChange(config.Key, parsed.Value, sourceAskJoule, comment)
		}
		d.output(cb, fmt.Sprintf("✓ %s set to %s", config.Label, formattedValue), jouletypes.StatusSuccess)
		return true
	}

	if cb.OnSettingChange == nil {
		d.output(cb, fmt.Sprintf("I would set %s to %s, but settings updates aren't connected.",
			strings.ToLower(config.Label), formattedValue), jouletypes.StatusError)
		return true
	}

	cb.OnSettingChange(config.Key, parsed.Value, sourceAskJoule, comment)
	for _, key := range config.AlsoSet {
		cb.OnSettingChange(key, parsed.Value, sourceAskJoule,
			fmt.Sprintf("Set %s via Ask Joule", key))
	}
	for _, key := range config.AlsoDisable {
		cb.OnSettingChange(key, false, sourceAskJoule,
			fmt.Sprintf("Disabled %s via Ask Joule (alsoDisable from %s)", key, config.Key))
	}
	d.output(cb, fmt.Sprintf("✓ %s set to %s", config.Label, formattedValue), jouletypes.StatusSuccess)
	return true
}

// formatSettingValue renders a parsed value the way it appeared to the
// user: integers without decimals, floats with trailing zeros trimmed.
func formatSettingValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
