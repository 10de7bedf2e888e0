package commands

import (
	"fmt"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// applyAdvancedSetting handles the API-key, model, and voice-duration
// commands backed by the preference store. Returns false when the action
// is not an advanced setting.
func (d *Dispatcher) applyAdvancedSetting(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	switch parsed.Action {
	case jouletypes.ActionSetGroqAPIKey:
		apiKey, _ := parsed.Value.(string)
		if apiKey == "" || !strings.HasPrefix(apiKey, "gsk_") {
			d.output(cb, "❌ Invalid Groq API key format. Must start with 'gsk_'", jouletypes.StatusError)
			return true
		}
		if err := d.setPref(PrefGroqAPIKey, apiKey); err != nil {
			d.output(cb, fmt.Sprintf("Failed to set Groq API key: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.output(cb, "✓ Groq API key updated successfully", jouletypes.StatusSuccess)
		d.speak(cb, "Groq API key updated")
		return true

	case jouletypes.ActionSetGroqModel:
		model, _ := parsed.Value.(string)
		if err := d.setPref(PrefGroqModel, model); err != nil {
			d.output(cb, fmt.Sprintf("Failed to set Groq model: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.output(cb, fmt.Sprintf("✓ Groq model set to %s", model), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Groq model set to %s", model))
		return true

	case jouletypes.ActionSetLLMProvider:
		provider, _ := parsed.Value.(string)
		if err := d.setPref(PrefLLMProvider, provider); err != nil {
			d.output(cb, fmt.Sprintf("Failed to set AI provider: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.output(cb, fmt.Sprintf("✓ AI provider set to %s", provider), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("AI provider set to %s", provider))
		return true

	case jouletypes.ActionSetVoiceListen:
		seconds := valueInt(parsed.Value)
		if seconds < 2 {
			seconds = 2
		} else if seconds > 30 {
			seconds = 30
		}
		if err := d.setPref(PrefListenSeconds, strconv.Itoa(seconds)); err != nil {
			d.output(cb, fmt.Sprintf("Failed to set voice listening duration: %s", err.Error()), jouletypes.StatusError)
			return true
		}
		d.output(cb, fmt.Sprintf("✓ Voice listening duration set to %d seconds", seconds), jouletypes.StatusSuccess)
		d.speak(cb, fmt.Sprintf("Voice listening duration set to %d seconds", seconds))
		return true

	case jouletypes.ActionQueryGroqAPIKey:
		apiKey := d.getPref(PrefGroqAPIKey)
		if apiKey == "" {
			d.output(cb, "ℹ️ No Groq API key configured. Add one in Settings to enable AI features.", jouletypes.StatusInfo)
			return true
		}
		masked := apiKey
		if len(apiKey) > 12 {
			masked = fmt.Sprintf("%s...%s", apiKey[:8], apiKey[len(apiKey)-4:])
		}
		d.output(cb, fmt.Sprintf("✓ Groq API key is configured: %s", masked), jouletypes.StatusInfo)
		return true

	case jouletypes.ActionQueryGroqModel:
		model := d.getPref(PrefGroqModel)
		if model == "" {
			model = DefaultGroqModel
		}
		d.output(cb, fmt.Sprintf("✓ Current Groq model: %s", model), jouletypes.StatusInfo)
		d.speak(cb, fmt.Sprintf("Current Groq model is %s", model))
		return true

	case jouletypes.ActionQueryLLMProvider:
		provider := d.getPref(PrefLLMProvider)
		if provider == "" {
			provider = DefaultLLMProvider
		}
		d.output(cb, fmt.Sprintf("✓ Current AI provider: %s", provider), jouletypes.StatusInfo)
		d.speak(cb, fmt.Sprintf("Current AI provider is %s", provider))
		return true

	case jouletypes.ActionQueryVoiceListen:
		seconds := d.getPref(PrefListenSeconds)
		if seconds == "" {
			seconds = "5"
		}
		d.output(cb, fmt.Sprintf("✓ Voice listening duration: %s seconds", seconds), jouletypes.StatusInfo)
		d.speak(cb, fmt.Sprintf("Voice listening duration is %s seconds", seconds))
		return true
	}
	return false
}

func (d *Dispatcher) setPref(key, value string) error {
	if d.prefs == nil {
		return fmt.Errorf("preferences are not available")
	}
	return d.prefs.SetPref(key, value)
}

func (d *Dispatcher) getPref(key string) string {
	if d.prefs == nil {
		return ""
	}
	return d.prefs.GetPref(key)
}
