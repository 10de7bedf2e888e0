package commands

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// applyThermostatSetting handles the thermostat-document setters:
// compressor runtime, differentials, schedule start times, and per-period
// temperatures. Schedule edits touch all seven weekdays in one save.
func (d *Dispatcher) applyThermostatSetting(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	switch parsed.Action {
	case jouletypes.ActionSetCompressorMinRuntime:
		seconds := valueInt(parsed.Value)
		err := d.mutateThermostat(func(s *jouletypes.ThermostatSettings) {
			s.Thresholds.CompressorMinCycleOff = seconds
		})
		if err != nil {
			d.output(cb, fmt.Sprintf("Failed to set compressor runtime: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.notifyChange(cb, "thermostat.thresholds.compressorMinCycleOff", seconds, "Set compressor min runtime via Ask Joule")
		minutes := int(math.Round(float64(seconds) / 60))
		d.output(cb, fmt.Sprintf("✓ Compressor minimum runtime set to %d minutes (%d seconds)", minutes, seconds), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Compressor minimum runtime set to %d minutes", minutes))
		return true

	case jouletypes.ActionSetHeatDifferential:
		v := valueFloat(parsed.Value)
		err := d.mutateThermostat(func(s *jouletypes.ThermostatSettings) {
			s.Thresholds.HeatDifferential = v
		})
		if err != nil {
			d.output(cb, fmt.Sprintf("Failed to set heat differential: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.notifyChange(cb, "thermostat.thresholds.heatDifferential", v, "Set heat differential via Ask Joule")
		d.output(cb, fmt.Sprintf("✓ Heat Differential set to %s°F", formatSettingValue(v)), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Heat Differential set to %s degrees", formatSettingValue(v)))
		return true

	case jouletypes.ActionSetCoolDifferential:
		v := valueFloat(parsed.Value)
		err := d.mutateThermostat(func(s *jouletypes.ThermostatSettings) {
			s.Thresholds.CoolDifferential = v
		})
		if err != nil {
			d.output(cb, fmt.Sprintf("Failed to set cool differential: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.notifyChange(cb, "thermostat.thresholds.coolDifferential", v, "Set cool differential via Ask Joule")
		d.output(cb, fmt.Sprintf("✓ Cool Differential set to %s°F", formatSettingValue(v)), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Cool Differential set to %s degrees", formatSettingValue(v)))
		return true

	case jouletypes.ActionSetSleepModeStartTime, jouletypes.ActionSetSleepTime:
		return d.setScheduleStart(parsed, cb, jouletypes.ComfortSleep,
			"thermostat.schedule.sleepModeStartTime", "Set sleep mode start time via Ask Joule", "Nighttime")

	case jouletypes.ActionSetDaytimeStartTime, jouletypes.ActionSetWakeTime:
		return d.setScheduleStart(parsed, cb, jouletypes.ComfortHome,
			"thermostat.schedule.daytimeStartTime", "Set daytime start time via Ask Joule", "Daytime")

	case jouletypes.ActionSetDaytimeTemp:
		v := valueFloat(parsed.Value)
		err := d.mutateThermostat(func(s *jouletypes.ThermostatSettings) {
			setHeatSetpoint(s, jouletypes.ComfortHome, v)
		})
		if err != nil {
			d.output(cb, fmt.Sprintf("Failed to set daytime temperature: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.notifyChange(cb, "thermostat.comfortSettings.home.heatSetPoint", v, "Set daytime temperature via Ask Joule")
		d.output(cb, fmt.Sprintf("✓ Daytime temperature set to %s°F", formatSettingValue(v)), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Daytime temperature set to %s degrees", formatSettingValue(v)))
		return true

	case jouletypes.ActionSetNighttimeTemp:
		v := valueFloat(parsed.Value)
		err := d.mutateThermostat(func(s *jouletypes.ThermostatSettings) {
			setHeatSetpoint(s, jouletypes.ComfortSleep, v)
		})
		if err != nil {
			d.output(cb, fmt.Sprintf("Failed to set nighttime temperature: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.notifyChange(cb, "thermostat.comfortSettings.sleep.heatSetPoint", v, "Set nighttime temperature via Ask Joule")
		d.output(cb, fmt.Sprintf("✓ Nighttime temperature set to %s°F", formatSettingValue(v)), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Nighttime temperature set to %s degrees", formatSettingValue(v)))
		return true
	}
	return false
}

func (d *Dispatcher) setScheduleStart(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks, comfort jouletypes.ComfortSetting, changeKey, comment, label string) bool {
	timeValue, _ := parsed.Value.(string)
	err := d.mutateThermostat(func(s *jouletypes.ThermostatSettings) {
		setScheduleTimeAllDays(s, comfort, timeValue)
	})
	if err != nil {
		d.output(cb, fmt.Sprintf("Failed to set %s start time: %s", strings.ToLower(label), err.Error()), jouletypes.StatusError)
		return true
	}
	d.notifyChange(cb, changeKey, timeValue, comment)

	display := formatClockTime(timeValue)
	d.output(cb, fmt.Sprintf("✓ %s start time set to %s for all days", label, display), jouletypes.StatusSuccess)
	d.speak(cb, fmt.Sprintf("%s start time set to %s", label, display))
	return true
}

// mutateThermostat applies fn to a loaded copy of the thermostat document
// and saves it. The document only persists when the save succeeds, so a
// multi-day edit is all-or-nothing.
func (d *Dispatcher) mutateThermostat(fn func(*jouletypes.ThermostatSettings)) error {
	if d.thermostat == nil {
		return fmt.Errorf("thermostat settings are not available")
	}
	settings, err := d.thermostat.Load()
	if err != nil {
		return err
	}
	fn(&settings)
	return d.thermostat.Save(settings)
}

func (d *Dispatcher) notifyChange(cb jouletypes.DispatchCallbacks, key string, value interface{}, comment string) {
	if cb.OnSettingChange != nil {
		cb.OnSettingChange(key, value, sourceAskJoule, comment)
	}
}

// setScheduleTimeAllDays moves the comfort period to the given time on
// every weekday, inserting a sorted entry on days that lack one.
func setScheduleTimeAllDays(s *jouletypes.ThermostatSettings, comfort jouletypes.ComfortSetting, t string) {
	if s.Schedule == nil {
		s.Schedule = make(map[int][]jouletypes.SchedulePeriod)
	}
	for day := 0; day < 7; day++ {
		periods := s.Schedule[day]
		idx := -1
		for i, p := range periods {
			if p.ComfortSetting == comfort {
				idx = i
				break
			}
		}
		if idx >= 0 {
			periods[idx].Time = t
		} else {
			periods = append(periods, jouletypes.SchedulePeriod{Time: t, ComfortSetting: comfort})
			sort.Slice(periods, func(i, j int) bool { return periods[i].Time < periods[j].Time })
		}
		s.Schedule[day] = periods
	}
}

func setHeatSetpoint(s *jouletypes.ThermostatSettings, comfort jouletypes.ComfortSetting, v float64) {
	if s.ComfortSettings == nil {
		s.ComfortSettings = make(map[jouletypes.ComfortSetting]jouletypes.ComfortProfile)
	}
	profile := s.ComfortSettings[comfort]
	profile.Heat = v
	s.ComfortSettings[comfort] = profile
}

// formatClockTime renders "HH:MM" as a 12-hour display time.
func formatClockTime(t string) string {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return t
	}
	switch {
	case hours > 12:
		return fmt.Sprintf("%d:%02d PM", hours-12, minutes)
	case hours == 12:
		return fmt.Sprintf("12:%02d PM", minutes)
	case hours == 0:
		return fmt.Sprintf("12:%02d AM", minutes)
	default:
		return fmt.Sprintf("%d:%02d AM", hours, minutes)
	}
}

func valueInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	default:
		return 0
	}
}

func valueFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return 0
	}
}
