package services

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// DefaultThermostatSettings returns the factory thermostat document: the
// safe-defaults threshold profile, standard comfort setpoints, and a
// weekday/weekend schedule. Each call returns a fresh document.
func DefaultThermostatSettings() jouletypes.ThermostatSettings {
	weekday := []jouletypes.SchedulePeriod{
		{Time: "06:00", ComfortSetting: jouletypes.ComfortHome},
		{Time: "08:00", ComfortSetting: jouletypes.ComfortAway},
		{Time: "17:00", ComfortSetting: jouletypes.ComfortHome},
		{Time: "22:00", ComfortSetting: jouletypes.ComfortSleep},
	}
	weekend := []jouletypes.SchedulePeriod{
		{Time: "08:00", ComfortSetting: jouletypes.ComfortHome},
		{Time: "22:00", ComfortSetting: jouletypes.ComfortSleep},
	}

	schedule := make(map[int][]jouletypes.SchedulePeriod, 7)
	for day := 0; day < 7; day++ {
		var template []jouletypes.SchedulePeriod
		if day == 0 || day == 6 {
			template = weekend
		} else {
			template = weekday
		}
		periods := make([]jouletypes.SchedulePeriod, len(template))
		copy(periods, template)
		schedule[day] = periods
	}

	return jouletypes.ThermostatSettings{
		ComfortSettings: map[jouletypes.ComfortSetting]jouletypes.ComfortProfile{
			jouletypes.ComfortHome:  {Heat: 70, Cool: 74},
			jouletypes.ComfortAway:  {Heat: 62, Cool: 85},
			jouletypes.ComfortSleep: {Heat: 66, Cool: 72},
		},
		Thresholds: jouletypes.Thresholds{
			CompressorMinCycleOff: 300,
			HeatDifferential:      0.5,
			CoolDifferential:      0.5,
		},
		Schedule: schedule,
	}
}

// ThermostatService persists the thermostat document as YAML. Load always
// returns an independent copy, so callers can mutate freely and commit via
// Save; a failed Save leaves the stored document untouched.
type ThermostatService struct {
	mu   sync.Mutex
	path string
}

// NewThermostatService creates a thermostat store persisting to path.
func NewThermostatService(path string) *ThermostatService {
	return &ThermostatService{path: path}
}

// Name returns the service name "thermostat" for registration.
func (t *ThermostatService) Name() string {
	return "thermostat"
}

// Initialize seeds the store with defaults when no document exists yet.
func (t *ThermostatService) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.path == "" {
		return nil
	}
	if _, err := os.Stat(t.path); err == nil {
		return nil
	}
	return t.writeLocked(DefaultThermostatSettings())
}

// Load reads the thermostat document, merging defaults for any missing
// sections. A missing or unreadable file degrades to the full defaults.
func (t *ThermostatService) Load() (jouletypes.ThermostatSettings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	defaults := DefaultThermostatSettings()
	if t.path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		logger.Warn("failed to read thermostat settings, using defaults", "path", t.path, "error", err)
		return defaults, nil
	}

	var stored jouletypes.ThermostatSettings
	if err := yaml.Unmarshal(data, &stored); err != nil {
		logger.Warn("failed to parse thermostat settings, using defaults", "path", t.path, "error", err)
		return defaults, nil
	}

	return mergeThermostatDefaults(stored, defaults), nil
}

// Save replaces the whole thermostat document atomically: the new content
// is written to a temp file and renamed into place.
func (t *ThermostatService) Save(settings jouletypes.ThermostatSettings) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.path == "" {
		return nil
	}
	return t.writeLocked(settings)
}

func (t *ThermostatService) writeLocked(settings jouletypes.ThermostatSettings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode thermostat settings: %w", err)
	}

	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write thermostat settings: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("failed to write thermostat settings: %w", err)
	}
	return nil
}

// mergeThermostatDefaults fills sections absent from a stored document so
// every field a handler touches exists.
func mergeThermostatDefaults(stored, defaults jouletypes.ThermostatSettings) jouletypes.ThermostatSettings {
	if stored.ComfortSettings == nil {
		stored.ComfortSettings = defaults.ComfortSettings
	} else {
		for name, profile := range defaults.ComfortSettings {
			if _, ok := stored.ComfortSettings[name]; !ok {
				stored.ComfortSettings[name] = profile
			}
		}
	}

	if stored.Thresholds.CompressorMinCycleOff == 0 {
		stored.Thresholds.CompressorMinCycleOff = defaults.Thresholds.CompressorMinCycleOff
	}
	if stored.Thresholds.HeatDifferential == 0 {
		stored.Thresholds.HeatDifferential = defaults.Thresholds.HeatDifferential
	}
	if stored.Thresholds.CoolDifferential == 0 {
		stored.Thresholds.CoolDifferential = defaults.Thresholds.CoolDifferential
	}

	if stored.Schedule == nil {
		stored.Schedule = defaults.Schedule
	} else {
		for day, periods := range defaults.Schedule {
			if _, ok := stored.Schedule[day]; !ok {
				stored.Schedule[day] = periods
			}
		}
	}

	return stored
}
