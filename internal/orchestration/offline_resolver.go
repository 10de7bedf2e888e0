package orchestration

import (
	"fmt"
	"math"
	"strings"
	"time"

	"joule/internal/calc"
	"joule/pkg/jouletypes"
)

// DeviceSource exposes cached thermostat telemetry. A nil state means no
// device has reported yet.
type DeviceSource interface {
	State() *jouletypes.DeviceState
}

// SettingsReader supplies the unified settings record for balance point
// calculations.
type SettingsReader interface {
	GetAll() map[string]interface{}
}

// DeviceOfflineResolver answers the offline-intelligence command variant
// from cached telemetry and local settings, with no network access. Every
// branch tolerates missing data by explaining what to connect or upload.
type DeviceOfflineResolver struct {
	device   DeviceSource
	settings SettingsReader
}

// NewDeviceOfflineResolver creates a resolver. Both sources are optional.
func NewDeviceOfflineResolver(device DeviceSource, settings SettingsReader) *DeviceOfflineResolver {
	return &DeviceOfflineResolver{device: device, settings: settings}
}

// Resolve handles one offline-answer command. It always returns true for
// recognized types so the caller never falls through to the LLM path.
func (r *DeviceOfflineResolver) Resolve(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	// Finished answers: knowledge base, calculator, easter egg.
	if parsed.Answer != "" {
		output(cb, parsed.Answer, jouletypes.StatusInfo)
		speak(cb, parsed.Answer)
		return true
	}

	if parsed.NeedsContext {
		switch parsed.Type {
		case "temperature":
			return r.answerTemperature(cb)
		case "humidity":
			return r.answerHumidity(cb)
		case "hvacStatus":
			return r.answerHVACStatus(cb)
		case "balancePoint":
			return r.answerBalancePoint(cb)
		case "yesterdayCost":
			msg := "Yesterday's cost calculation requires thermostat runtime data. Upload CSV data in Performance Analyzer to see daily costs."
			output(cb, msg, jouletypes.StatusInfo)
			speak(cb, msg)
			return true
		}
	}

	switch parsed.Check {
	case "firmware":
		output(cb, "Firmware check not yet implemented. This will check your local version against GitHub latest.", jouletypes.StatusInfo)
		return true
	case "bridge":
		return r.answerBridge(cb)
	case "lastUpdate":
		return r.answerLastUpdate(cb)
	}

	return false
}

func (r *DeviceOfflineResolver) state() *jouletypes.DeviceState {
	if r.device == nil {
		return nil
	}
	return r.device.State()
}

func (r *DeviceOfflineResolver) answerTemperature(cb jouletypes.DispatchCallbacks) bool {
	state := r.state()
	if state == nil || !state.HasData {
		msg := "Temperature data not available. Connect your thermostat to see real-time temperature."
		output(cb, msg, jouletypes.StatusInfo)
		speak(cb, msg)
		return true
	}
	output(cb, fmt.Sprintf("Current temperature: %.1f°F", state.CurrentTemp), jouletypes.StatusInfo)
	speak(cb, fmt.Sprintf("The temperature is %.0f degrees", state.CurrentTemp))
	return true
}

func (r *DeviceOfflineResolver) answerHumidity(cb jouletypes.DispatchCallbacks) bool {
	state := r.state()
	if state == nil || !state.HasData {
		msg := "Humidity data not available. Connect your thermostat to see real-time humidity."
		output(cb, msg, jouletypes.StatusInfo)
		speak(cb, msg)
		return true
	}
	output(cb, fmt.Sprintf("Current humidity: %.0f%%", state.CurrentHumidity), jouletypes.StatusInfo)
	speak(cb, fmt.Sprintf("Humidity is %.0f percent", state.CurrentHumidity))
	return true
}

func (r *DeviceOfflineResolver) answerHVACStatus(cb jouletypes.DispatchCallbacks) bool {
	state := r.state()
	if state == nil || !state.HasData || state.HVACMode == "" {
		msg := "HVAC status not available. Connect your thermostat to see real-time status."
		output(cb, msg, jouletypes.StatusInfo)
		speak(cb, msg)
		return true
	}
	status := fmt.Sprintf("HVAC is in %s mode (not currently running)", state.HVACMode)
	if state.HVACRunning {
		status = fmt.Sprintf("HVAC is running in %s mode", state.HVACMode)
	}
	output(cb, status, jouletypes.StatusInfo)
	speak(cb, status)
	return true
}

// answerBalancePoint has three outcomes: a finite balance point, a
// calculation whose crossover fell outside the plausible range, and a
// failure to read settings at all.
func (r *DeviceOfflineResolver) answerBalancePoint(cb jouletypes.DispatchCallbacks) bool {
	if r.settings == nil {
		msg := "Balance point calculation error: settings unavailable. Please check your system settings in Settings."
		output(cb, msg, jouletypes.StatusError)
		speak(cb, "I encountered an error calculating your balance point. Please check your system settings.")
		return true
	}

	result := calc.CalculateBalancePoint(balancePointInput(r.settings.GetAll()))
	if result.BalancePoint != nil && !math.IsNaN(*result.BalancePoint) {
		msg := fmt.Sprintf("Your balance point is %.1f°F. This is the outdoor temperature where your heat pump output equals your building's heat loss.", *result.BalancePoint)
		output(cb, msg, jouletypes.StatusInfo)
		speak(cb, fmt.Sprintf("Balance point is %.0f degrees", *result.BalancePoint))
		return true
	}

	factor := "unknown"
	if result.HeatLossFactor > 0 {
		factor = formatWithCommas(result.HeatLossFactor)
	}
	msg := fmt.Sprintf("I calculated your balance point, but it's outside the normal range. Your heat loss factor is %s BTU/hr per °F. This might indicate your system is very oversized or undersized. Check your system capacity and home details in Settings.", factor)
	output(cb, msg, jouletypes.StatusInfo)
	speak(cb, "Balance point calculation completed, but the result is outside normal range. Check your system settings.")
	return true
}

func (r *DeviceOfflineResolver) answerBridge(cb jouletypes.DispatchCallbacks) bool {
	state := r.state()
	if state == nil {
		output(cb, "Bridge connection status not available.", jouletypes.StatusInfo)
		return true
	}
	if state.BridgeOnline {
		output(cb, "Bridge is connected", jouletypes.StatusSuccess)
		speak(cb, "Bridge is connected")
	} else {
		output(cb, "Bridge is not connected", jouletypes.StatusInfo)
		speak(cb, "Bridge is not connected")
	}
	return true
}

func (r *DeviceOfflineResolver) answerLastUpdate(cb jouletypes.DispatchCallbacks) bool {
	state := r.state()
	if state == nil || !state.HasData {
		output(cb, "No data updates yet. Connect your thermostat or bridge to see real-time update timestamps.", jouletypes.StatusInfo)
		return true
	}

	ts, err := time.Parse(time.RFC3339, state.LastUpdate)
	if err != nil {
		output(cb, "Last update timestamp not tracked. Data is available but the update time wasn't recorded. This is normal in demo mode or when using manual data entry.", jouletypes.StatusInfo)
		return true
	}

	minutes := int(math.Round(time.Since(ts).Minutes()))
	timeAgo := fmt.Sprintf("%d minutes ago", minutes)
	switch {
	case minutes < 1:
		timeAgo = "just now"
	case minutes == 1:
		timeAgo = "1 minute ago"
	}
	output(cb, fmt.Sprintf("Last data update: %s (%s)", ts.Local().Format("1/2/2006, 3:04:05 PM"), timeAgo), jouletypes.StatusInfo)
	speak(cb, fmt.Sprintf("Last update was %s", timeAgo))
	return true
}

// balancePointInput maps unified settings onto solver input. Missing keys
// stay zero so the solver applies its own defaults.
func balancePointInput(settings map[string]interface{}) jouletypes.BalancePointInput {
	in := jouletypes.BalancePointInput{}
	if v, ok := numberSetting(settings, "capacity"); ok {
		in.Capacity = v
	}
	if v, ok := numberSetting(settings, "squareFeet"); ok {
		in.SquareFeet = v
	}
	if v, ok := numberSetting(settings, "ceilingHeight"); ok {
		in.CeilingHeight = v
	}
	if v, ok := numberSetting(settings, "insulationLevel"); ok {
		in.InsulationLevel = v
	}
	if v, ok := numberSetting(settings, "hspf2"); ok {
		in.HSPF2 = v
	}
	if v, ok := numberSetting(settings, "winterThermostat"); ok {
		in.WinterThermostat = v
		in.TargetIndoorTemp = v
	}
	return in
}

func numberSetting(settings map[string]interface{}, key string) (float64, bool) {
	switch v := settings[key].(type) {
	case float64:
		return v, v != 0
	case float32:
		return float64(v), v != 0
	case int:
		return float64(v), v != 0
	case int64:
		return float64(v), v != 0
	}
	return 0, false
}

func formatWithCommas(v float64) string {
	n := int(math.Round(v))
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if n < 0 {
		out = "-" + out
	}
	return out
}

func output(cb jouletypes.DispatchCallbacks, message, status string) {
	if cb.SetOutput != nil {
		cb.SetOutput(message, status)
	}
}

func speak(cb jouletypes.DispatchCallbacks, message string) {
	if cb.Speak != nil {
		cb.Speak(message)
	}
}
