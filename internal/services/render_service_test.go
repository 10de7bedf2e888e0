package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrefs map[string]string

func (p stubPrefs) GetPref(key string) string { return p[key] }

func TestRenderService_RenderMarkdown(t *testing.T) {
	r := NewRenderService(nil)
	require.NoError(t, r.Initialize())

	out, err := r.RenderMarkdown("# System Status\n\nYour balance point is **35°F**.")
	require.NoError(t, err)
	assert.Contains(t, out, "System Status")
	assert.Contains(t, out, "35°F")
}

func TestRenderService_EmptyMarkdownRejected(t *testing.T) {
	r := NewRenderService(nil)
	require.NoError(t, r.Initialize())

	_, err := r.RenderMarkdown("   ")
	require.Error(t, err)
	assert.Equal(t, "markdown content cannot be empty", err.Error())
}

func TestRenderService_NotInitialized(t *testing.T) {
	r := NewRenderService(nil)

	_, err := r.RenderMarkdown("# hi")
	require.Error(t, err)
	assert.Equal(t, "render service not initialized", err.Error())
}

func TestRenderService_DarkModePreferenceSelectsStyle(t *testing.T) {
	r := NewRenderService(stubPrefs{"darkMode": "true"})
	require.NoError(t, r.Initialize())

	out, err := r.RenderMarkdown("plain text line")
	require.NoError(t, err)
	assert.Contains(t, out, "plain text line")
}

func TestRenderService_StatusStyles(t *testing.T) {
	r := NewRenderService(nil)

	assert.Contains(t, r.Success("saved"), "saved")
	assert.Contains(t, r.Error("failed"), "failed")
	assert.Contains(t, r.Warning("careful"), "careful")
	assert.Contains(t, r.Info("note"), "note")
}
