package commands

import (
	"fmt"
	"strconv"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// sourceAskJoule tags settings mutations made through the command engine.
const sourceAskJoule = "AskJoule"

// Preference keys for values kept outside the unified settings record.
const (
	PrefGroqAPIKey    = "groqApiKey"
	PrefGroqModel     = "groqModel"
	PrefLLMProvider   = "llmProvider"
	PrefListenSeconds = "askJouleListenSeconds"
	PrefDarkMode      = "darkMode"
	PrefByzantine     = "byzantineMode"
)

// DefaultGroqModel is reported when no model preference is stored.
const DefaultGroqModel = "llama-3.1-8b-instant"

// DefaultLLMProvider is reported when no provider preference is stored.
const DefaultLLMProvider = "groq"

// ThermostatStore loads and saves the thermostat settings document.
// Save persists the whole document, so multi-day schedule edits land
// atomically.
type ThermostatStore interface {
	Load() (jouletypes.ThermostatSettings, error)
	Save(jouletypes.ThermostatSettings) error
}

// PreferenceStore holds small app preferences (API key, model name,
// voice duration, UI flags) as strings.
type PreferenceStore interface {
	GetPref(key string) string
	SetPref(key, value string) error
}

// DiagnosticsSource exposes the cached performance-analyzer output.
// A nil snapshot with a nil error means no issues were found; an error
// means no usable data has been uploaded.
type DiagnosticsSource interface {
	Snapshot() (*jouletypes.DiagnosticsSnapshot, error)
	CSVInfo() (*jouletypes.CSVInfo, error)
}

// AnalysisSource exposes the derived annual estimate, savings
// recommendations, and configured location. All reads are nil-tolerant.
type AnalysisSource interface {
	Estimate() *jouletypes.AnnualEstimate
	Recommendations() []jouletypes.Recommendation
	Location() *jouletypes.Location
}

// OfflineResolver answers the offline-intelligence variant: direct
// answers plus device-state and balance-point questions.
type OfflineResolver interface {
	Resolve(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool
}

// Config wires a Dispatcher. Every field may be nil; handlers degrade
// to their documented no-data messages.
type Config struct {
	Settings    SettingsStore
	Thermostat  ThermostatStore
	Prefs       PreferenceStore
	Diagnostics DiagnosticsSource
	Analysis    AnalysisSource
	Offline     OfflineResolver
	Personality *Personality

	// Undo reverts the most recent audited settings change. Returns
	// false when there is nothing to undo.
	Undo func() bool
}

// Dispatcher executes parsed commands through a strict-priority chain of
// handler families. Each stage runs only if every earlier stage declined.
type Dispatcher struct {
	settings    SettingsStore
	thermostat  ThermostatStore
	prefs       PreferenceStore
	diags       DiagnosticsSource
	analysis    AnalysisSource
	offline     OfflineResolver
	personality *Personality
	undo        func() bool
}

// NewDispatcher builds a Dispatcher from the config. A nil Personality
// gets the wall-clock default.
func NewDispatcher(cfg Config) *Dispatcher {
	p := cfg.Personality
	if p == nil {
		p = NewPersonality()
	}
	return &Dispatcher{
		settings:    cfg.Settings,
		thermostat:  cfg.Thermostat,
		prefs:       cfg.Prefs,
		diags:       cfg.Diagnostics,
		analysis:    cfg.Analysis,
		offline:     cfg.Offline,
		personality: p,
		undo:        cfg.Undo,
	}
}

// Dispatch runs the priority chain and returns true when a stage fully
// handled the command. A false return with IsCommand set means the
// grammar recognized something no handler claims; callers surface that
// as an execution error and must not fall through to the LLM path.
func (d *Dispatcher) Dispatch(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	if !parsed.IsCommand {
		return false
	}

	// 1. Offline answers need no network and always win.
	if parsed.Action == jouletypes.ActionOfflineAnswer {
		return d.dispatchOffline(parsed, cb)
	}

	// 2. Registry-driven setting commands.
	if d.applySettingCommand(parsed, cb) {
		return true
	}

	// 3. Presets.
	switch parsed.Action {
	case jouletypes.ActionPresetSleep:
		return d.applyPreset("sleep", cb)
	case jouletypes.ActionPresetAway:
		return d.applyPreset("away", cb)
	case jouletypes.ActionPresetHome:
		return d.applyPreset("home", cb)
	}

	// 4. Temperature deltas and the current-setpoint query.
	switch parsed.Action {
	case jouletypes.ActionIncreaseTemp, jouletypes.ActionDecreaseTemp:
		return d.adjustTemp(parsed, cb)
	case jouletypes.ActionQueryTemp:
		temp := d.settingFloat("winterThermostat", 68)
		response := d.personality.Respond("queryTemp", temp)
		d.output(cb, response, jouletypes.StatusInfo)
		d.speak(cb, response)
		return true
	}

	// 5. Navigation.
	if parsed.Action == jouletypes.ActionNavigate {
		return d.navigateTo(parsed, cb)
	}

	// 6. Educational lookups.
	if parsed.Action == jouletypes.ActionEducate {
		return d.explainTopic(parsed.Topic, cb)
	}

	// 7. Help and dark mode.
	switch parsed.Action {
	case jouletypes.ActionHelp:
		d.output(cb, helpContent, jouletypes.StatusInfo)
		d.speak(cb, helpSpeech)
		return true
	case jouletypes.ActionSetDarkMode, jouletypes.ActionToggleDarkMode:
		return d.setDarkMode(parsed, cb)
	}

	// 8. Byzantine mode, checked before the generic failure so the
	// easter egg is never swallowed.
	if parsed.Action == jouletypes.ActionSetByzantine {
		return d.setByzantineMode(parsed, cb)
	}

	// 9. Advanced/API settings.
	if d.applyAdvancedSetting(parsed, cb) {
		return true
	}

	// 10. Diagnostics.
	if d.runDiagnostic(parsed, cb) {
		return true
	}

	// 11. Thermostat schedule setters.
	if d.applyThermostatSetting(parsed, cb) {
		return true
	}

	// 12. What-if and analysis queries.
	if d.runAnalysis(parsed, cb) {
		return true
	}

	// 13. Recognized by the grammar, claimed by nobody.
	logger.Debug("command not claimed by any dispatch stage", "action", parsed.Action)
	d.output(cb, "❌ Sorry, I didn't recognize that command.", jouletypes.StatusError)
	return false
}

// dispatchOffline hands the offline variant to the resolver, falling
// back to emitting parser-computed answers directly when none is wired.
func (d *Dispatcher) dispatchOffline(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	if d.offline != nil {
		return d.offline.Resolve(parsed, cb)
	}
	if parsed.Answer != "" {
		d.output(cb, parsed.Answer, jouletypes.StatusInfo)
		d.speak(cb, parsed.Answer)
		return true
	}
	d.output(cb, "Live device data isn't available right now.", jouletypes.StatusInfo)
	return true
}

// presets holds the fixed winter setpoints applied by preset commands.
var presets = map[string]struct {
	Temp    float64
	Comment string
}{
	"sleep": {65, "Sleep mode preset"},
	"away":  {60, "Away mode preset"},
	"home":  {70, "Home mode preset"},
}

func (d *Dispatcher) applyPreset(presetType string, cb jouletypes.DispatchCallbacks) bool {
	preset, ok := presets[presetType]
	if !ok {
		return false
	}
	if cb.OnSettingChange != nil {
		cb.OnSettingChange("winterThermostat", preset.Temp, sourceAskJoule, preset.Comment)
		response := d.personality.Respond(presetType, preset.Temp)
		d.output(cb, response, jouletypes.StatusSuccess)
		d.speak(cb, response)
	}
	return true
}

func (d *Dispatcher) adjustTemp(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	delta := 2.0
	switch v := parsed.Value.(type) {
	case int:
		delta = float64(v)
	case float64:
		delta = v
	}

	current := d.settingFloat("winterThermostat", 68)
	var newTemp float64
	var action, verb string
	if parsed.Action == jouletypes.ActionIncreaseTemp {
		newTemp = current + delta
		action, verb = "tempUp", "Increased"
	} else {
		newTemp = current - delta
		action, verb = "tempDown", "Decreased"
	}

	if cb.OnSettingChange != nil {
		cb.OnSettingChange("winterThermostat", newTemp, sourceAskJoule,
			fmt.Sprintf("%s by %s°", verb, formatSettingValue(delta)))
		response := d.personality.Respond(action, newTemp)
		d.output(cb, response, jouletypes.StatusSuccess)
		d.speak(cb, response)
	}
	return true
}

func (d *Dispatcher) navigateTo(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	if parsed.CityName != "" && d.prefs != nil {
		// Forecast pages pick the city up on load.
		if err := d.prefs.SetPref("askJoule_targetCity", parsed.CityName); err != nil {
			logger.Debug("failed to store navigation city", "error", err)
		}
	}

	path, ok := RouteFromShortcut(parsed.Target)
	if !ok {
		d.output(cb, "Navigation target not recognized.", jouletypes.StatusError)
		return true
	}

	label := RouteLabel(path)
	if cb.Navigate != nil {
		cb.Navigate(path)
	}
	d.output(cb, fmt.Sprintf("Opening %s...", label), jouletypes.StatusSuccess)
	d.speak(cb, fmt.Sprintf("Opening %s", label))
	return true
}

func (d *Dispatcher) explainTopic(topic string, cb jouletypes.DispatchCallbacks) bool {
	normalized := normalizeTopic(topic)
	content, ok := educationalContent[normalized]
	if !ok {
		content, ok = educationalContent[topic]
	}
	if ok {
		d.output(cb, fmt.Sprintf("ℹ️ %s", content), jouletypes.StatusInfo)
		return true
	}

	available := ""
	for i, key := range educationTopics {
		if i > 0 {
			available += ", "
		}
		available += key
	}
	d.output(cb, fmt.Sprintf("I don't have info on that topic yet. Try: %s.", available), jouletypes.StatusInfo)
	return true
}

func normalizeTopic(topic string) string {
	out := make([]rune, 0, len(topic))
	for _, r := range topic {
		switch {
		case r == ' ' || r == '-' || r == '_':
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func (d *Dispatcher) setDarkMode(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	current := d.prefs != nil && d.prefs.GetPref(PrefDarkMode) == "true"
	newDark := current
	if parsed.Action == jouletypes.ActionToggleDarkMode {
		newDark = !current
	} else if v, ok := parsed.Value.(bool); ok {
		newDark = v
	}

	if d.prefs != nil {
		if err := d.prefs.SetPref(PrefDarkMode, strconv.FormatBool(newDark)); err != nil {
			d.output(cb, fmt.Sprintf("Failed to change theme: %s", err.Error()), jouletypes.StatusError)
			return true
		}
	}

	mode := "light"
	if newDark {
		mode = "dark"
	}
	d.output(cb, fmt.Sprintf("✓ Switched to %s mode", mode), jouletypes.StatusSuccess)
	d.speak(cb, fmt.Sprintf("Switched to %s mode", mode))
	return true
}

const byzantineActivation = `🕯️ BYZANTINE MODE ACTIVATED 🕯️

Oh faithful servant of efficiency! The Holy Order of HVAC doth welcome thee.
Henceforth, all responses shall be delivered in the sacred tradition of Byzantine liturgical chant.

Rejoice, Oh Coil Unfrosted!
Glory to Thee, Oh Scroll Compressor!
May thy HSPF be ever high, and thy electric bills be ever low.

(Mode Plagal of the Fourth, with faint 60Hz hum)
Amen.`

func (d *Dispatcher) setByzantineMode(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	enabled, _ := parsed.Value.(bool)
	if d.prefs != nil {
		if err := d.prefs.SetPref(PrefByzantine, strconv.FormatBool(enabled)); err != nil {
			logger.Debug("failed to persist byzantine mode", "error", err)
		}
	}
	logger.Info("byzantine mode changed", "enabled", enabled)

	if enabled {
		d.output(cb, byzantineActivation, jouletypes.StatusSuccess)
		d.speak(cb, "Rejoice, Oh Coil Unfrosted! Byzantine mode is now active.")
	} else {
		d.output(cb, "Byzantine mode disabled. Joule returns to normal speech patterns.", jouletypes.StatusInfo)
	}
	return true
}

// settingFloat reads a numeric setting with a default for missing or
// non-numeric values.
func (d *Dispatcher) settingFloat(key string, def float64) float64 {
	if d.settings == nil {
		return def
	}
	v, ok := d.settings.Get(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		if t != 0 {
			return t
		}
	case int:
		if t != 0 {
			return float64(t)
		}
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil && f != 0 {
			return f
		}
	}
	return def
}

func (d *Dispatcher) settingString(key string) string {
	if d.settings == nil {
		return ""
	}
	v, ok := d.settings.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (d *Dispatcher) output(cb jouletypes.DispatchCallbacks, message, status string) {
	if cb.SetOutput != nil {
		cb.SetOutput(message, status)
	}
}

func (d *Dispatcher) speak(cb jouletypes.DispatchCallbacks, message string) {
	if cb.Speak != nil {
		cb.Speak(message)
	}
}
