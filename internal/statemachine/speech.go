// Package statemachine models the voice interaction lifecycle as an explicit
// state machine. Speech recognition and speech synthesis are mutually
// exclusive: synthesis pauses an active recognition session, and the machine
// remembers whether recognition should resume once synthesis finishes.
package statemachine

import (
	"sync"

	"joule/internal/logger"

	"github.com/charmbracelet/log"
)

// State identifies the current phase of the voice interaction lifecycle.
type State string

const (
	// StateIdle means neither recognition nor synthesis is active.
	StateIdle State = "idle"
	// StateListening means speech recognition is capturing audio.
	StateListening State = "listening"
	// StateSpeaking means speech synthesis is playing with no pending
	// intent to resume recognition.
	StateSpeaking State = "speaking"
	// StatePausedForSpeech means synthesis interrupted an active
	// recognition session and recognition resumes when synthesis ends.
	StatePausedForSpeech State = "paused_for_speech"
)

// DefaultMaxAutoRestarts bounds how many times recognition is restarted
// after ending unexpectedly within a single listening session.
const DefaultMaxAutoRestarts = 8

// Config holds tunable parameters for the speech machine.
type Config struct {
	MaxAutoRestarts int
}

// DefaultConfig returns the standard speech machine configuration.
func DefaultConfig() Config {
	return Config{MaxAutoRestarts: DefaultMaxAutoRestarts}
}

// SpeechMachine tracks recognition and synthesis activity and decides when
// recognition may restart or resume. All methods are safe for concurrent use.
type SpeechMachine struct {
	mu     sync.Mutex
	state  State
	config Config

	// Restarts consumed since the user last initiated listening.
	restartCount int
	// Set when recognition fails with a permission-style error. Only an
	// explicit StartListening clears it.
	autoRestartDisabled bool
	logger              *log.Logger
}

// NewSpeechMachine creates a speech machine with the given configuration.
func NewSpeechMachine(config Config) *SpeechMachine {
	if config.MaxAutoRestarts <= 0 {
		config.MaxAutoRestarts = DefaultMaxAutoRestarts
	}
	return &SpeechMachine{
		state:  StateIdle,
		config: config,
		logger: logger.NewStyledLogger("SpeechMachine"),
	}
}

// NewSpeechMachineWithDefaults creates a speech machine with default configuration.
func NewSpeechMachineWithDefaults() *SpeechMachine {
	return NewSpeechMachine(DefaultConfig())
}

// State returns the current state.
func (sm *SpeechMachine) State() State {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state
}

// GetConfig returns the current configuration.
func (sm *SpeechMachine) GetConfig() Config {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.config
}

// SetConfig updates the configuration.
func (sm *SpeechMachine) SetConfig(config Config) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if config.MaxAutoRestarts <= 0 {
		config.MaxAutoRestarts = DefaultMaxAutoRestarts
	}
	sm.config = config
}

// StartListening handles an explicit user request to listen. It clears any
// permission lockout and resets the restart budget. If synthesis is active
// the machine moves to PausedForSpeech so recognition starts once synthesis
// finishes. It returns true when recognition should start immediately.
func (sm *SpeechMachine) StartListening() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.autoRestartDisabled = false
	sm.restartCount = 0

	switch sm.state {
	case StateIdle:
		sm.transition(StateListening, "user started listening")
		return true
	case StateSpeaking:
		sm.transition(StatePausedForSpeech, "listening deferred until synthesis ends")
		return false
	default:
		// Already listening or already queued behind synthesis.
		return false
	}
}

// StopListening handles an explicit user request to stop listening. Manual
// stop also cancels any pending resume-after-speech intent.
func (sm *SpeechMachine) StopListening() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch sm.state {
	case StateListening:
		sm.transition(StateIdle, "user stopped listening")
	case StatePausedForSpeech:
		sm.transition(StateSpeaking, "resume intent cancelled")
	}
}

// BeginSpeaking records that speech synthesis has started. Active recognition
// is paused with intent to resume, so the microphone never hears the
// system's own voice.
func (sm *SpeechMachine) BeginSpeaking() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch sm.state {
	case StateListening:
		sm.transition(StatePausedForSpeech, "recognition paused for synthesis")
	case StateIdle:
		sm.transition(StateSpeaking, "synthesis started")
	}
}

// FinishSpeaking records that speech synthesis ended naturally. It returns
// true when recognition should resume. Resuming grants a fresh restart
// budget, matching an explicit start.
func (sm *SpeechMachine) FinishSpeaking() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch sm.state {
	case StatePausedForSpeech:
		if sm.autoRestartDisabled {
			sm.transition(StateIdle, "resume blocked by recognition lockout")
			return false
		}
		sm.restartCount = 0
		sm.transition(StateListening, "recognition resumed after synthesis")
		return true
	case StateSpeaking:
		sm.transition(StateIdle, "synthesis finished")
	}
	return false
}

// StopSpeaking handles the user manually cutting synthesis off. A manual
// stop suppresses any pending resume, so recognition stays off until the
// user starts it again.
func (sm *SpeechMachine) StopSpeaking() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch sm.state {
	case StateSpeaking, StatePausedForSpeech:
		sm.transition(StateIdle, "user stopped synthesis")
	}
}

// RecognitionEnded records that recognition stopped without a user request,
// such as a browser timeout. It returns true when recognition should be
// restarted; restarts are bounded per listening session.
func (sm *SpeechMachine) RecognitionEnded() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.state != StateListening {
		return false
	}
	return sm.maybeRestart("recognition ended unexpectedly")
}

// RecognitionError records a recognition failure. Permission-style errors
// ("not-allowed", "aborted") disable auto-restart for the session until the
// user explicitly starts listening again. Other errors are treated like an
// unexpected end. It returns true when recognition should be restarted.
func (sm *SpeechMachine) RecognitionError(code string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if code == "not-allowed" || code == "aborted" {
		sm.autoRestartDisabled = true
		sm.logger.Warn("recognition disabled until user re-initiates", "error", code)
		switch sm.state {
		case StateListening:
			sm.transition(StateIdle, "recognition error")
		case StatePausedForSpeech:
			sm.transition(StateSpeaking, "recognition error")
		}
		return false
	}

	if sm.state != StateListening {
		return false
	}
	sm.logger.Debug("recognition error", "error", code)
	return sm.maybeRestart("recognition error")
}

// ResumePending reports whether recognition will resume when synthesis ends.
func (sm *SpeechMachine) ResumePending() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state == StatePausedForSpeech
}

// AutoRestartDisabled reports whether a permission-style error has locked
// out automatic restarts for this session.
func (sm *SpeechMachine) AutoRestartDisabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.autoRestartDisabled
}

// RestartCount returns how many automatic restarts the current listening
// session has consumed.
func (sm *SpeechMachine) RestartCount() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.restartCount
}

// maybeRestart consumes one restart from the session budget. Callers must
// hold sm.mu and have verified the machine is listening.
func (sm *SpeechMachine) maybeRestart(reason string) bool {
	if sm.autoRestartDisabled || sm.restartCount >= sm.config.MaxAutoRestarts {
		sm.transition(StateIdle, "restart budget exhausted")
		return false
	}
	sm.restartCount++
	sm.logger.Debug(reason, "restart", sm.restartCount, "max", sm.config.MaxAutoRestarts)
	return true
}

// transition moves to the next state. Callers must hold sm.mu.
func (sm *SpeechMachine) transition(next State, reason string) {
	if sm.state == next {
		return
	}
	sm.logger.Debug("state transition", "from", sm.state, "to", next, "reason", reason)
	sm.state = next
}
