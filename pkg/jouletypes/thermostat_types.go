package jouletypes

// ComfortSetting names a comfort profile slot in the weekly schedule.
type ComfortSetting string

// The three comfort profiles.
const (
	ComfortHome  ComfortSetting = "home"
	ComfortAway  ComfortSetting = "away"
	ComfortSleep ComfortSetting = "sleep"
)

// SchedulePeriod is one transition in a day's schedule: at Time the
// thermostat switches to the named comfort profile. Time is "HH:MM" 24-hour.
type SchedulePeriod struct {
	Time           string         `yaml:"time" json:"time"`
	ComfortSetting ComfortSetting `yaml:"comfortSetting" json:"comfortSetting"`
}

// ComfortProfile holds the heat and cool setpoints for one comfort setting.
type ComfortProfile struct {
	Heat float64 `yaml:"heat" json:"heat"`
	Cool float64 `yaml:"cool" json:"cool"`
}

// Thresholds carries the equipment-protection and cycling parameters.
// CompressorMinCycleOff is seconds.
type Thresholds struct {
	CompressorMinCycleOff int     `yaml:"compressorMinCycleOff" json:"compressorMinCycleOff"`
	HeatDifferential      float64 `yaml:"heatDifferential" json:"heatDifferential"`
	CoolDifferential      float64 `yaml:"coolDifferential" json:"coolDifferential"`
}

// ThermostatSettings is the persisted thermostat document: comfort profiles,
// protection thresholds, and a weekly schedule keyed by weekday 0 (Sunday)
// through 6. Each day's periods are kept sorted by time.
type ThermostatSettings struct {
	ComfortSettings map[ComfortSetting]ComfortProfile `yaml:"comfortSettings" json:"comfortSettings"`
	Thresholds      Thresholds                        `yaml:"thresholds" json:"thresholds"`
	Schedule        map[int][]SchedulePeriod          `yaml:"schedule" json:"schedule"`
}

// AuditLogEntry records one successful settings mutation. Entries are
// created exactly once and never mutated; undo reverts the settings key
// without appending a new entry.
type AuditLogEntry struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	Key       string      `json:"key"`
	OldValue  interface{} `json:"oldValue"`
	NewValue  interface{} `json:"newValue"`
	Source    string      `json:"source"`
	Comment   string      `json:"comment"`
}
