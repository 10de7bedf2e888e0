package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"joule/internal/logger"
)

// DefaultSettings is the single source of truth for every user setting.
// Reads fall back to these values when the store is empty or unreadable.
var DefaultSettings = map[string]interface{}{
	// System
	"capacity":        24,
	"efficiency":      15.0,
	"hspf2":           9.0,
	"afue":            0.95,
	"primarySystem":   "heatPump",
	"coolingSystem":   "heatPump",
	"coolingCapacity": 36,

	// Thermostat
	"winterThermostat": 70.0,
	"summerThermostat": 74.0,

	// Building
	"squareFeet":            800.0,
	"insulationLevel":       0.65,
	"homeShape":             0.9,
	"ceilingHeight":         8.0,
	"homeElevation":         0.0,
	"solarExposure":         1.0,
	"useManualHeatLoss":     false,
	"useCalculatedHeatLoss": true,
	"useAnalyzerHeatLoss":   false,
	"manualHeatLoss":        314.0,

	// Energy
	"energyMode":         "heating",
	"useElectricAuxHeat": true,

	// Cost
	"utilityCost": 0.1,
	"gasCost":     1.2,

	// UI
	"useDetailedAnnualEstimate": false,
}

var validCapacities = []int{18, 24, 30, 36, 42, 48, 60}

// SettingChange describes one successful settings mutation, delivered to
// subscribers after the new value has been persisted.
type SettingChange struct {
	Key      string
	Value    interface{}
	Previous interface{}
	Source   string
	Comment  string
}

// SettingsService is the single writer for the persisted user-settings
// record. All mutations flow through Set, which validates, persists, and
// then notifies subscribers.
type SettingsService struct {
	mu          sync.RWMutex
	store       *viper.Viper
	path        string
	initialized bool
	subscribers []func(SettingChange)
}

// NewSettingsService creates a settings service persisting to path. An
// empty path keeps the store in memory only, which the tests rely on.
func NewSettingsService(path string) *SettingsService {
	return &SettingsService{store: viper.New(), path: path}
}

// Name returns the service name "settings" for registration.
func (s *SettingsService) Name() string {
	return "settings"
}

// Initialize loads the persisted record. A missing or corrupt file is not
// fatal: reads degrade to defaults until the next successful Set.
func (s *SettingsService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		s.store.SetConfigFile(s.path)
		s.store.SetConfigType("json")
		if err := s.store.ReadInConfig(); err != nil {
			logger.Warn("failed to read settings store, using defaults", "path", s.path, "error", err)
		}
	}
	s.initialized = true
	return nil
}

// Get returns the stored value for key, falling back to the default. The
// second return reports whether the key is known at all.
func (s *SettingsService) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.store.IsSet(key) {
		return s.store.Get(key), true
	}
	if def, ok := DefaultSettings[key]; ok {
		return def, true
	}
	return nil, false
}

// GetAll returns a snapshot of every setting, defaults merged under stored
// values.
func (s *SettingsService) GetAll() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]interface{}, len(DefaultSettings))
	for key, def := range DefaultSettings {
		if s.store.IsSet(key) {
			out[key] = s.store.Get(key)
		} else {
			out[key] = def
		}
	}
	return out
}

// Set validates and persists one setting, then notifies subscribers.
// Validation failures return the validator's message verbatim so handlers
// can surface it to the user.
func (s *SettingsService) Set(key string, value interface{}, source, comment string) error {
	if err := ValidateSetting(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	var previous interface{}
	if s.store.IsSet(key) {
		previous = s.store.Get(key)
	} else {
		previous = DefaultSettings[key]
	}
	s.store.Set(key, value)
	if s.path != "" {
		if err := s.store.WriteConfigAs(s.path); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to save setting: %w", err)
		}
	}
	subscribers := make([]func(SettingChange), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	logger.SettingMutation(key, previous, value, source)
	change := SettingChange{Key: key, Value: value, Previous: previous, Source: source, Comment: comment}
	for _, fn := range subscribers {
		fn(change)
	}
	return nil
}

// Subscribe registers a callback invoked after every successful mutation.
func (s *SettingsService) Subscribe(fn func(SettingChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Reset restores one setting to its default value.
func (s *SettingsService) Reset(key string) error {
	def, ok := DefaultSettings[key]
	if !ok {
		return fmt.Errorf("no default value for setting: %s", key)
	}
	return s.Set(key, def, "reset", "Reset to default")
}

// ValidateSetting checks a candidate value against the setting's rule.
// Unknown keys are allowed with a warning, matching the permissive store
// the rest of the app expects.
func ValidateSetting(key string, value interface{}) error {
	validator, ok := settingValidators[key]
	if !ok {
		logger.Warn("no validator for setting", "key", key)
		return nil
	}
	return validator(value)
}

var settingValidators = map[string]func(interface{}) error{
	"capacity":        capacityValidator("Capacity"),
	"coolingCapacity": capacityValidator("Cooling capacity"),
	"efficiency":      rangeValidator("Efficiency (SEER) must be between 13 and 22", 13, 22),
	"hspf2":           rangeValidator("HSPF2 must be between 6 and 13", 6, 13),
	"afue":            rangeValidator("AFUE must be between 0.6 and 0.99", 0.6, 0.99),
	"primarySystem":   enumValidator("Primary system", "heatPump", "gasFurnace"),
	"coolingSystem":   enumValidator("Cooling system", "heatPump", "centralAC", "dualFuel", "none"),
	"winterThermostat": rangeValidator(
		"Winter thermostat must be between 50 and 85°F", 50, 85),
	"summerThermostat": rangeValidator(
		"Summer thermostat must be between 50 and 85°F", 50, 85),
	"squareFeet": rangeValidator(
		"Square feet must be between 100 and 10,000", 100, 10000),
	"insulationLevel": rangeValidator(
		"Insulation level must be between 0.3 and 2.0", 0.3, 2.0),
	"homeShape": rangeValidator(
		"Home shape must be between 0.5 and 1.5", 0.5, 1.5),
	"ceilingHeight": rangeValidator(
		"Ceiling height must be between 6 and 20 feet", 6, 20),
	"homeElevation": rangeValidator(
		"Home elevation must be between -500 and 15,000 feet", -500, 15000),
	"solarExposure": rangeValidator(
		"Solar exposure must be between 0 and 2", 0, 2),
	"energyMode": enumValidator("Energy mode", "heating", "cooling"),
	"utilityCost": rangeValidator(
		"Utility cost must be between $0.05 and $1.00 per kWh", 0.05, 1.0),
	"gasCost": rangeValidator(
		"Gas cost must be between $0.50 and $5.00 per therm", 0.5, 5.0),
	"manualHeatLoss": rangeValidator(
		"Manual heat loss must be between 10 and 10,000 BTU/hr/°F", 10, 10000),
	"analyzerHeatLoss": func(value interface{}) error {
		if value == nil {
			return nil
		}
		n, ok := asNumber(value)
		if !ok || n <= 0 {
			return fmt.Errorf("Analyzer heat loss must be a positive number (BTU/hr/°F)")
		}
		return nil
	},
	"useElectricAuxHeat":        boolValidator("Use electric aux heat"),
	"useDetailedAnnualEstimate": boolValidator("Use detailed annual estimate"),
	"useManualHeatLoss":         boolValidator("Use manual heat loss"),
	"useCalculatedHeatLoss":     boolValidator("Use calculated heat loss"),
	"useAnalyzerHeatLoss":       boolValidator("Use analyzer heat loss"),
}

func capacityValidator(label string) func(interface{}) error {
	return func(value interface{}) error {
		n, ok := asNumber(value)
		if ok {
			for _, valid := range validCapacities {
				if n == float64(valid) {
					return nil
				}
			}
		}
		parts := make([]string, len(validCapacities))
		for i, v := range validCapacities {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return fmt.Errorf("%s must be one of: %s", label, strings.Join(parts, ", "))
	}
}

func rangeValidator(message string, min, max float64) func(interface{}) error {
	return func(value interface{}) error {
		n, ok := asNumber(value)
		if !ok || n < min || n > max {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

func enumValidator(label string, valid ...string) func(interface{}) error {
	return func(value interface{}) error {
		s, ok := value.(string)
		if ok {
			for _, v := range valid {
				if s == v {
					return nil
				}
			}
		}
		return fmt.Errorf("%s must be one of: %s", label, strings.Join(valid, ", "))
	}
}

func boolValidator(label string) func(interface{}) error {
	return func(value interface{}) error {
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s must be true or false", label)
		}
		return nil
	}
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
