package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"joule/pkg/jouletypes"
)

func TestAdvancedSetting_GroqAPIKey(t *testing.T) {
	prefs := newFakePrefs()
	d := testDispatcher(Config{Prefs: prefs})

	t.Run("valid key", func(t *testing.T) {
		c := &capture{}
		cmd := localCommand(jouletypes.ActionSetGroqAPIKey)
		cmd.Value = "gsk_abc123def456ghi789"

		handled := d.Dispatch(cmd, c.callbacks())

		assert.True(t, handled)
		assert.Equal(t, "gsk_abc123def456ghi789", prefs.values[PrefGroqAPIKey])
		assert.Equal(t, "✓ Groq API key updated successfully", c.lastMessage())
	})

	t.Run("rejects wrong prefix", func(t *testing.T) {
		c := &capture{}
		cmd := localCommand(jouletypes.ActionSetGroqAPIKey)
		cmd.Value = "sk_wrongprefix"

		handled := d.Dispatch(cmd, c.callbacks())

		assert.True(t, handled)
		assert.Equal(t, "❌ Invalid Groq API key format. Must start with 'gsk_'", c.lastMessage())
		assert.Equal(t, jouletypes.StatusError, c.lastStatus())
	})

	t.Run("query masks the stored key", func(t *testing.T) {
		c := &capture{}
		handled := d.Dispatch(localCommand(jouletypes.ActionQueryGroqAPIKey), c.callbacks())

		assert.True(t, handled)
		assert.Equal(t, "✓ Groq API key is configured: gsk_abc1...i789", c.lastMessage())
	})

	t.Run("query with no key", func(t *testing.T) {
		empty := testDispatcher(Config{Prefs: newFakePrefs()})
		c := &capture{}
		empty.Dispatch(localCommand(jouletypes.ActionQueryGroqAPIKey), c.callbacks())

		assert.Equal(t, "ℹ️ No Groq API key configured. Add one in Settings to enable AI features.", c.lastMessage())
	})
}

func TestAdvancedSetting_GroqModel(t *testing.T) {
	prefs := newFakePrefs()
	d := testDispatcher(Config{Prefs: prefs})

	c := &capture{}
	cmd := localCommand(jouletypes.ActionSetGroqModel)
	cmd.Value = "llama-3.3-70b-versatile"
	d.Dispatch(cmd, c.callbacks())

	assert.Equal(t, "llama-3.3-70b-versatile", prefs.values[PrefGroqModel])
	assert.Equal(t, "✓ Groq model set to llama-3.3-70b-versatile", c.lastMessage())

	c = &capture{}
	d.Dispatch(localCommand(jouletypes.ActionQueryGroqModel), c.callbacks())
	assert.Equal(t, "✓ Current Groq model: llama-3.3-70b-versatile", c.lastMessage())
}

func TestAdvancedSetting_GroqModelDefault(t *testing.T) {
	d := testDispatcher(Config{Prefs: newFakePrefs()})
	c := &capture{}

	d.Dispatch(localCommand(jouletypes.ActionQueryGroqModel), c.callbacks())

	assert.Equal(t, "✓ Current Groq model: llama-3.1-8b-instant", c.lastMessage())
}

func TestAdvancedSetting_LLMProvider(t *testing.T) {
	prefs := newFakePrefs()
	d := testDispatcher(Config{Prefs: prefs})

	c := &capture{}
	cmd := localCommand(jouletypes.ActionSetLLMProvider)
	cmd.Value = "anthropic"
	d.Dispatch(cmd, c.callbacks())

	assert.Equal(t, "anthropic", prefs.values[PrefLLMProvider])
	assert.Equal(t, "✓ AI provider set to anthropic", c.lastMessage())

	c = &capture{}
	d.Dispatch(localCommand(jouletypes.ActionQueryLLMProvider), c.callbacks())
	assert.Equal(t, "✓ Current AI provider: anthropic", c.lastMessage())
}

func TestAdvancedSetting_LLMProviderDefault(t *testing.T) {
	d := testDispatcher(Config{Prefs: newFakePrefs()})
	c := &capture{}

	d.Dispatch(localCommand(jouletypes.ActionQueryLLMProvider), c.callbacks())

	assert.Equal(t, "✓ Current AI provider: groq", c.lastMessage())
}

func TestAdvancedSetting_VoiceListenDuration(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		seconds string
	}{
		{"in range", 10, "10"},
		{"clamped high", 99, "30"},
		{"clamped low", 1, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := newFakePrefs()
			d := testDispatcher(Config{Prefs: prefs})
			c := &capture{}

			cmd := localCommand(jouletypes.ActionSetVoiceListen)
			cmd.Value = tt.value
			handled := d.Dispatch(cmd, c.callbacks())

			assert.True(t, handled)
			assert.Equal(t, tt.seconds, prefs.values[PrefListenSeconds])
			assert.Equal(t, "✓ Voice listening duration set to "+tt.seconds+" seconds", c.lastMessage())
		})
	}
}

func TestAdvancedSetting_VoiceListenQueryDefault(t *testing.T) {
	d := testDispatcher(Config{Prefs: newFakePrefs()})
	c := &capture{}

	d.Dispatch(localCommand(jouletypes.ActionQueryVoiceListen), c.callbacks())

	assert.Equal(t, "✓ Voice listening duration: 5 seconds", c.lastMessage())
}
