// Package orchestration coordinates one submitted utterance end to end:
// parse, local dispatch or LLM fallback, history persistence, audit
// logging, then speech output, always in that order.
package orchestration

import (
	"os"
	"reflect"
	"strings"
	"sync"

	"joule/internal/commands"
	"joule/internal/logger"
	"joule/internal/parser"
	"joule/internal/services"
	"joule/internal/statemachine"
	"joule/pkg/jouletypes"
)

// PrefSpeechEnabled stores whether spoken responses are enabled. Any value
// other than "off" keeps speech on.
const PrefSpeechEnabled = "askJouleTts"

const agentHistoryTurns = 5

// SettingsStore is the read/write settings surface the controller wires
// into dispatch callbacks. Subscribe delivers every successful mutation,
// which is how the controller builds audit entries.
type SettingsStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, source, comment string) error
	GetAll() map[string]interface{}
	Subscribe(fn func(services.SettingChange))
}

// PreferenceReader supplies stored app preferences.
type PreferenceReader interface {
	GetPref(key string) string
}

// Historian records submitted queries and replays recent ones for agent
// context.
type Historian interface {
	Append(raw string)
	Recent(n int) []string
}

// Auditor appends settings-change entries to the audit trail.
type Auditor interface {
	Record(key string, oldValue, newValue interface{}, source, comment string) jouletypes.AuditLogEntry
}

// Agent answers free-form questions through the LLM.
type Agent interface {
	Answer(req services.AgentRequest) *jouletypes.AgentResult
}

// LocationSource supplies the configured location for agent context.
type LocationSource interface {
	Location() *jouletypes.Location
}

// Speaker synthesizes one utterance. Speak blocks until synthesis ends.
type Speaker interface {
	Speak(text string)
}

// Result is the outcome of one submitted utterance.
type Result struct {
	Message     string
	Status      string
	Handled     bool
	Source      string // "command", "sales", or "agent"
	NeedsAPIKey bool
	RateLimited bool
	TotalTokens int
}

// Config wires a Controller. Dispatcher is required; everything else may
// be nil and the matching behavior degrades.
type Config struct {
	Dispatcher *commands.Dispatcher
	Settings   SettingsStore
	Prefs      PreferenceReader
	History    Historian
	Audit      Auditor
	Agent      Agent
	Sales      parser.SalesResolver
	Device     DeviceSource
	Location   LocationSource
	Speech     *statemachine.SpeechMachine
	Speaker    Speaker
	Navigate   func(route string)

	// ResumeListening restarts speech recognition after synthesis when
	// the state machine says recognition should resume.
	ResumeListening func()
}

// Controller owns the submit lifecycle. Side effects within one utterance
// happen in a fixed order: parse, dispatch or LLM, history append, audit
// append, speech.
type Controller struct {
	dispatcher *commands.Dispatcher
	settings   SettingsStore
	prefs      PreferenceReader
	history    Historian
	audit      Auditor
	agent      Agent
	sales      parser.SalesResolver
	device     DeviceSource
	location   LocationSource
	speech     *statemachine.SpeechMachine
	speaker    Speaker
	navigate   func(route string)
	resume     func()

	mu        sync.Mutex
	lastQuery string

	// Settings mutations observed while a dispatch is in flight. Audit
	// entries are appended from here after history persists.
	capturing      bool
	pendingChanges []services.SettingChange
}

// NewController builds a controller from the config.
func NewController(cfg Config) *Controller {
	c := &Controller{
		dispatcher: cfg.Dispatcher,
		settings:   cfg.Settings,
		prefs:      cfg.Prefs,
		history:    cfg.History,
		audit:      cfg.Audit,
		agent:      cfg.Agent,
		sales:      cfg.Sales,
		device:     cfg.Device,
		location:   cfg.Location,
		speech:     cfg.Speech,
		speaker:    cfg.Speaker,
		navigate:   cfg.Navigate,
		resume:     cfg.ResumeListening,
	}
	if c.settings != nil {
		c.settings.Subscribe(c.captureChange)
	}
	return c
}

// captureChange buffers settings mutations made during dispatch so their
// audit entries land after history, per the submit ordering.
func (c *Controller) captureChange(change services.SettingChange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capturing {
		c.pendingChanges = append(c.pendingChanges, change)
	}
}

// Submit runs one utterance through the full lifecycle and returns the
// outcome. Blank input is a no-op.
func (c *Controller) Submit(input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}
	}

	c.mu.Lock()
	c.lastQuery = input
	c.mu.Unlock()

	parsed := parser.Parse(input, c.sales)

	var res Result
	var pendingAudit []services.SettingChange
	var pendingSpeech []string

	switch {
	case parsed.IsSalesQuery:
		res = Result{
			Message: parsed.SalesAnswer,
			Status:  jouletypes.StatusInfo,
			Handled: true,
			Source:  "sales",
		}
		pendingSpeech = append(pendingSpeech, parsed.SalesAnswer)

	case parsed.IsCommand:
		res, pendingAudit, pendingSpeech = c.runCommand(parsed)

	default:
		res = c.runAgent(input)
		if !res.NeedsAPIKey && res.Status != jouletypes.StatusError && res.Message != "" {
			pendingSpeech = append(pendingSpeech, res.Message)
		}
	}

	if c.history != nil {
		c.history.Append(input)
	}
	if c.audit != nil {
		for _, change := range pendingAudit {
			c.audit.Record(change.Key, change.Previous, change.Value, change.Source, change.Comment)
		}
	}
	c.speakAll(pendingSpeech)

	return res
}

// Retry re-submits the most recent query, typically after the user adds
// a missing API key.
func (c *Controller) Retry() Result {
	c.mu.Lock()
	last := c.lastQuery
	c.mu.Unlock()
	if last == "" {
		return Result{}
	}
	return c.Submit(last)
}

// LastQuery returns the most recently submitted input.
func (c *Controller) LastQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuery
}

// runCommand dispatches a parsed command with buffering callbacks so
// audit and speech land after dispatch completes. Settings-backed
// handlers write through the store themselves; OnSettingChange applies
// the rest, and the store subscription collects every mutation for the
// audit trail.
func (c *Controller) runCommand(parsed jouletypes.ParsedCommand) (Result, []services.SettingChange, []string) {
	var res Result
	var lines []string

	cb := jouletypes.DispatchCallbacks{
		SetOutput: func(message, status string) {
			res.Message = message
			res.Status = status
		},
		Speak: func(message string) {
			lines = append(lines, message)
		},
		OnSettingChange: func(key string, value interface{}, source, comment string) {
			if c.settings == nil {
				return
			}
			if cur, ok := c.settings.Get(key); ok && reflect.DeepEqual(cur, value) {
				// Already applied by a settings-backed handler.
				return
			}
			if err := c.settings.Set(key, value, source, comment); err != nil {
				logger.Warn("setting change rejected", "key", key, "error", err)
			}
		},
		Navigate: c.navigate,
	}

	c.mu.Lock()
	c.capturing = true
	c.pendingChanges = nil
	c.mu.Unlock()

	handled := c.dispatcher.Dispatch(parsed, cb)

	c.mu.Lock()
	c.capturing = false
	audits := c.pendingChanges
	c.pendingChanges = nil
	c.mu.Unlock()

	res.Handled = handled
	res.Source = "command"
	if !handled {
		res.Message = "I couldn't execute that command. Please try rephrasing it, or check if the command is supported."
		res.Status = jouletypes.StatusError
		lines = []string{"I couldn't execute that command. Please try rephrasing it."}
	}
	return res, audits, lines
}

// runAgent falls through to the LLM for anything the grammar did not
// claim.
func (c *Controller) runAgent(input string) Result {
	if c.agent == nil {
		return Result{
			Message: "No response from AI assistant",
			Status:  jouletypes.StatusError,
			Source:  "agent",
		}
	}

	req := services.AgentRequest{
		Query:  input,
		APIKey: c.groqAPIKey(),
	}
	if c.settings != nil {
		req.Settings = c.settings.GetAll()
	}
	if c.device != nil {
		req.Device = c.device.State()
	}
	if c.location != nil {
		req.Location = c.location.Location()
	}
	if c.history != nil {
		req.History = c.history.Recent(agentHistoryTurns)
	}
	if c.prefs != nil {
		req.Options.Provider = c.prefs.GetPref(commands.PrefLLMProvider)
		req.Options.Model = c.prefs.GetPref(commands.PrefGroqModel)
		req.Options.ByzantineMode = c.prefs.GetPref(commands.PrefByzantine) == "true"
	}

	answer := c.agent.Answer(req)
	res := Result{Source: "agent"}
	switch {
	case answer == nil:
		res.Message = "No response from AI assistant"
		res.Status = jouletypes.StatusError
	case answer.Error:
		res.Message = answer.Message
		res.Status = jouletypes.StatusError
		res.NeedsAPIKey = answer.NeedsAPIKey
		res.RateLimited = answer.RateLimited
	case answer.Success && answer.Message != "":
		res.Message = answer.Message
		res.Status = jouletypes.StatusSuccess
		res.TotalTokens = answer.TotalTokens
	default:
		res.Message = "Received an unexpected response format"
		res.Status = jouletypes.StatusError
	}
	return res
}

// groqAPIKey resolves the key from stored preferences first, then the
// environment.
func (c *Controller) groqAPIKey() string {
	if c.prefs != nil {
		if key := strings.TrimSpace(c.prefs.GetPref(commands.PrefGroqAPIKey)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
}

// speakAll speaks buffered lines through the synthesizer, driving the
// speech state machine so recognition pauses and resumes correctly.
func (c *Controller) speakAll(lines []string) {
	if c.speaker == nil || len(lines) == 0 {
		return
	}
	if c.prefs != nil && c.prefs.GetPref(PrefSpeechEnabled) == "off" {
		return
	}
	for _, line := range lines {
		if line == "" {
			continue
		}
		if c.speech != nil {
			c.speech.BeginSpeaking()
		}
		c.speaker.Speak(line)
		if c.speech != nil && c.speech.FinishSpeaking() && c.resume != nil {
			c.resume()
		}
	}
}
