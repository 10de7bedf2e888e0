package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/internal/commands"
	"joule/internal/services"
	"joule/internal/statemachine"
	"joule/pkg/jouletypes"
)

type fakeAgent struct {
	calls  int
	lastReq services.AgentRequest
	result *jouletypes.AgentResult
}

func (a *fakeAgent) Answer(req services.AgentRequest) *jouletypes.AgentResult {
	a.calls++
	a.lastReq = req
	return a.result
}

type eventLog struct {
	events []string
}

type recordingHistory struct {
	inner *services.HistoryService
	log   *eventLog
}

func (h *recordingHistory) Append(raw string) {
	h.log.events = append(h.log.events, "history")
	h.inner.Append(raw)
}

func (h *recordingHistory) Recent(n int) []string { return h.inner.Recent(n) }

type recordingAudit struct {
	inner *services.AuditService
	log   *eventLog
}

func (a *recordingAudit) Record(key string, oldValue, newValue interface{}, source, comment string) jouletypes.AuditLogEntry {
	a.log.events = append(a.log.events, "audit")
	return a.inner.Record(key, oldValue, newValue, source, comment)
}

type recordingSpeaker struct {
	log   *eventLog
	lines []string
}

func (s *recordingSpeaker) Speak(text string) {
	if s.log != nil {
		s.log.events = append(s.log.events, "speak")
	}
	s.lines = append(s.lines, text)
}

type controllerFixture struct {
	controller *Controller
	settings   *services.SettingsService
	prefs      *services.PreferenceService
	history    *recordingHistory
	audit      *recordingAudit
	speaker    *recordingSpeaker
	agent      *fakeAgent
	log        *eventLog
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	log := &eventLog{}
	settings := services.NewSettingsService("")
	require.NoError(t, settings.Initialize())
	prefs := services.NewPreferenceService("")
	require.NoError(t, prefs.Initialize())
	history := &recordingHistory{inner: services.NewHistoryService(), log: log}
	audit := &recordingAudit{inner: services.NewAuditService(nil), log: log}
	speaker := &recordingSpeaker{log: log}
	agent := &fakeAgent{result: &jouletypes.AgentResult{Success: true, Message: "Here is a detailed answer about your heating system."}}

	dispatcher := commands.NewDispatcher(commands.Config{
		Settings: settings,
		Prefs:    prefs,
	})

	f := &controllerFixture{
		settings: settings,
		prefs:    prefs,
		history:  history,
		audit:    audit,
		speaker:  speaker,
		agent:    agent,
		log:      log,
	}
	f.controller = NewController(Config{
		Dispatcher: dispatcher,
		Settings:   settings,
		Prefs:      prefs,
		History:    history,
		Audit:      audit,
		Agent:      agent,
		Speaker:    speaker,
	})
	return f
}

func TestController_BlankInput(t *testing.T) {
	f := newControllerFixture(t)

	res := f.controller.Submit("   ")
	assert.Equal(t, Result{}, res)
	assert.Empty(t, f.log.events)
}

func TestController_SettingCommandLifecycle(t *testing.T) {
	f := newControllerFixture(t)

	old, ok := f.settings.Get("winterThermostat")
	require.True(t, ok)

	res := f.controller.Submit("set winter thermostat to 72")
	require.True(t, res.Handled)
	assert.Equal(t, "command", res.Source)
	assert.Equal(t, jouletypes.StatusSuccess, res.Status)
	assert.Contains(t, res.Message, "Winter thermostat set to 72")

	stored, ok := f.settings.Get("winterThermostat")
	require.True(t, ok)
	assert.EqualValues(t, 72, stored)

	entries := f.audit.inner.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "winterThermostat", entries[0].Key)
	assert.Equal(t, old, entries[0].OldValue)
	assert.EqualValues(t, 72, entries[0].NewValue)
	assert.Equal(t, "AskJoule", entries[0].Source)

	assert.Equal(t, []string{"set winter thermostat to 72"}, f.history.inner.Entries())
}

func TestController_SideEffectOrdering(t *testing.T) {
	f := newControllerFixture(t)

	res := f.controller.Submit("sleep mode")
	require.True(t, res.Handled)

	// History persists before the audit entry, and speech comes last.
	assert.Equal(t, []string{"history", "audit", "speak"}, f.log.events)

	entries := f.audit.inner.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "winterThermostat", entries[0].Key)
	assert.EqualValues(t, 65, entries[0].NewValue)
	assert.Equal(t, "Sleep mode preset", entries[0].Comment)
}

func TestController_SalesQuery(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.sales = services.NewSalesService()

	res := f.controller.Submit("does this work with nest thermostats")
	require.True(t, res.Handled)
	assert.Equal(t, "sales", res.Source)
	assert.Equal(t, jouletypes.StatusInfo, res.Status)
	assert.NotEmpty(t, res.Message)

	assert.Zero(t, f.agent.calls)
	require.Len(t, f.speaker.lines, 1)
	assert.Equal(t, res.Message, f.speaker.lines[0])
	assert.Equal(t, 1, f.history.inner.Len())
}

func TestController_OfflineCommandNeverReachesAgent(t *testing.T) {
	f := newControllerFixture(t)

	res := f.controller.Submit("what's the current temperature")
	require.True(t, res.Handled)
	assert.Equal(t, "command", res.Source)
	assert.Zero(t, f.agent.calls)
}

func TestController_AgentFallback(t *testing.T) {
	f := newControllerFixture(t)
	f.history.inner.Append("first question")
	f.history.inner.Append("second question")
	require.NoError(t, f.prefs.SetPref(commands.PrefGroqAPIKey, "gsk_test"))
	require.NoError(t, f.prefs.SetPref(commands.PrefGroqModel, "llama-3.3-70b-versatile"))
	require.NoError(t, f.prefs.SetPref(commands.PrefLLMProvider, "anthropic"))
	require.NoError(t, f.prefs.SetPref(commands.PrefByzantine, "true"))

	res := f.controller.Submit("heating a 2,000 sq ft home in Denver, CO with poor insulation at 72")
	assert.Equal(t, "agent", res.Source)
	assert.Equal(t, jouletypes.StatusSuccess, res.Status)
	assert.Equal(t, "Here is a detailed answer about your heating system.", res.Message)

	require.Equal(t, 1, f.agent.calls)
	req := f.agent.lastReq
	assert.Equal(t, "heating a 2,000 sq ft home in Denver, CO with poor insulation at 72", req.Query)
	assert.Equal(t, "gsk_test", req.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", req.Options.Model)
	assert.Equal(t, "anthropic", req.Options.Provider)
	assert.True(t, req.Options.ByzantineMode)
	assert.NotEmpty(t, req.Settings)

	// Agent context excludes the utterance being answered.
	assert.Equal(t, []string{"first question", "second question"}, req.History)
	assert.Equal(t, 3, f.history.inner.Len())

	require.Len(t, f.speaker.lines, 1)
	assert.Equal(t, res.Message, f.speaker.lines[0])
}

func TestController_AgentError(t *testing.T) {
	f := newControllerFixture(t)
	f.agent.result = &jouletypes.AgentResult{
		Error:       true,
		NeedsAPIKey: true,
		Message:     "🔑 Groq API key missing",
	}

	res := f.controller.Submit("is a ground source loop worth it for my lot")
	assert.Equal(t, jouletypes.StatusError, res.Status)
	assert.True(t, res.NeedsAPIKey)
	assert.Empty(t, f.speaker.lines)
}

func TestController_NoAgentWired(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.agent = nil

	res := f.controller.Submit("is a ground source loop worth it for my lot")
	assert.Equal(t, jouletypes.StatusError, res.Status)
	assert.Equal(t, "No response from AI assistant", res.Message)
}

func TestController_Retry(t *testing.T) {
	f := newControllerFixture(t)

	first := f.controller.Submit("is a ground source loop worth it for my lot")
	require.Equal(t, 1, f.agent.calls)
	assert.Equal(t, "is a ground source loop worth it for my lot", f.controller.LastQuery())

	second := f.controller.Retry()
	assert.Equal(t, 2, f.agent.calls)
	assert.Equal(t, first.Message, second.Message)
}

func TestController_RetryWithoutHistory(t *testing.T) {
	f := newControllerFixture(t)

	assert.Equal(t, Result{}, f.controller.Retry())
	assert.Zero(t, f.agent.calls)
}

func TestController_SpeechDisabledByPreference(t *testing.T) {
	f := newControllerFixture(t)
	require.NoError(t, f.prefs.SetPref(PrefSpeechEnabled, "off"))

	res := f.controller.Submit("sleep mode")
	require.True(t, res.Handled)
	assert.Empty(t, f.speaker.lines)
}

func TestController_SpeechPausesAndResumesListening(t *testing.T) {
	f := newControllerFixture(t)
	machine := statemachine.NewSpeechMachineWithDefaults()
	resumed := 0
	f.controller.speech = machine
	f.controller.resume = func() { resumed++ }

	require.True(t, machine.StartListening())

	res := f.controller.Submit("sleep mode")
	require.True(t, res.Handled)
	require.NotEmpty(t, f.speaker.lines)

	assert.Equal(t, 1, resumed)
	assert.Equal(t, statemachine.StateListening, machine.State())
}

func TestController_UnrecognizedQuestionWithEmptyAgentResponse(t *testing.T) {
	f := newControllerFixture(t)
	f.agent.result = &jouletypes.AgentResult{Success: true}

	res := f.controller.Submit("is a ground source loop worth it for my lot")
	assert.Equal(t, jouletypes.StatusError, res.Status)
	assert.Equal(t, "Received an unexpected response format", res.Message)
}
