package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"joule/internal/logger"
)

// RenderService renders agent answers and command confirmations for the
// terminal: markdown through Glamour, status lines through lipgloss.
// The darkMode preference selects the Glamour style.
type RenderService struct {
	initialized bool
	renderer    *glamour.TermRenderer
	prefs       interface{ GetPref(key string) string }

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
}

// NewRenderService creates a render service. prefs may be nil, in which
// case auto style detection is used.
func NewRenderService(prefs interface{ GetPref(key string) string }) *RenderService {
	return &RenderService{
		prefs:        prefs,
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		warningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		infoStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// Name returns the service name "render" for registration.
func (r *RenderService) Name() string {
	return "render"
}

// Initialize creates the terminal renderer with auto-style detection.
func (r *RenderService) Initialize() error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.renderer = renderer
	r.initialized = true
	logger.Debug("render service initialized")
	return nil
}

// RenderMarkdown renders markdown content to ANSI terminal output. The
// darkMode preference picks the dark or light Glamour style; without a
// preference store the auto-detected renderer is used.
func (r *RenderService) RenderMarkdown(markdown string) (string, error) {
	if !r.initialized {
		return "", fmt.Errorf("render service not initialized")
	}
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	if r.prefs != nil {
		switch r.prefs.GetPref("darkMode") {
		case "true":
			return r.renderWithStyle(markdown, "dark")
		case "false":
			return r.renderWithStyle(markdown, "light")
		}
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

func (r *RenderService) renderWithStyle(markdown, style string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Debug("falling back to auto-style renderer", "style", style, "error", err)
		rendered, err := r.renderer.Render(markdown)
		if err != nil {
			return "", fmt.Errorf("failed to render markdown: %w", err)
		}
		return rendered, nil
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown with style '%s': %w", style, err)
	}
	return rendered, nil
}

// Success styles a confirmation line.
func (r *RenderService) Success(text string) string {
	return r.successStyle.Render(text)
}

// Error styles an error line.
func (r *RenderService) Error(text string) string {
	return r.errorStyle.Render(text)
}

// Warning styles a warning line.
func (r *RenderService) Warning(text string) string {
	return r.warningStyle.Render(text)
}

// Info styles an informational line.
func (r *RenderService) Info(text string) string {
	return r.infoStyle.Render(text)
}
