package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

// fakeLLMClient records the last request and returns a canned result.
type fakeLLMClient struct {
	calls       int
	model       string
	messages    []jouletypes.ChatMessage
	temperature float64
	maxTokens   int
	result      *jouletypes.AgentResult
}

func (f *fakeLLMClient) GetProviderName() string { return "fake" }
func (f *fakeLLMClient) IsConfigured() bool      { return true }

func (f *fakeLLMClient) SendChatCompletion(model string, messages []jouletypes.ChatMessage, temperature float64, maxTokens int) (*jouletypes.AgentResult, error) {
	f.calls++
	f.model = model
	f.messages = messages
	f.temperature = temperature
	f.maxTokens = maxTokens
	if f.result != nil {
		return f.result, nil
	}
	return &jouletypes.AgentResult{Success: true, Message: "ok"}, nil
}

func newTestAgent(fake *fakeLLMClient) *AgentService {
	agent := NewAgentService(NewClientFactory(), NewKnowledgeService(), NewSalesService(), nil, nil)
	agent.SetClient(fake)
	return agent
}

func testAgentSettings() map[string]interface{} {
	return map[string]interface{}{
		"primarySystem":    "heatPump",
		"hspf2":            9.0,
		"efficiency":       16.0,
		"capacity":         36.0,
		"winterThermostat": 70.0,
		"summerThermostat": 74.0,
		"squareFeet":       2000.0,
		"utilityCost":      0.12,
		"gasCost":          1.2,
	}
}

func TestAgentService_BlankKeyShortCircuits(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "hello", APIKey: "   "})

	assert.True(t, result.Error)
	assert.True(t, result.NeedsAPIKey)
	assert.Equal(t, "🔑 Groq API key missing", result.Message)
	assert.Zero(t, fake.calls)
}

func TestAgentService_DefaultRequestShape(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "hello there", APIKey: "gsk_x"})
	require.True(t, result.Success)

	assert.Equal(t, defaultAgentModel, fake.model)
	assert.Equal(t, 0.7, fake.temperature)
	assert.Equal(t, 800, fake.maxTokens)

	require.NotEmpty(t, fake.messages)
	assert.Equal(t, "system", fake.messages[0].Role)
	assert.Contains(t, fake.messages[0].Content, "You are ProStat")

	last := fake.messages[len(fake.messages)-1]
	assert.Equal(t, "user", last.Role)
	assert.True(t, strings.HasPrefix(last.Content, "CONTEXT:\n"))
	assert.True(t, strings.HasSuffix(last.Content, "User question: hello there"))
}

func TestAgentService_ProviderFromOptionsReachesFactory(t *testing.T) {
	agent := NewAgentService(NewClientFactory(), nil, nil, nil, nil)

	result := agent.Answer(AgentRequest{
		Query:   "hello",
		APIKey:  "gsk_x",
		Options: jouletypes.AgentOptions{Provider: "frontier"},
	})

	require.True(t, result.Error)
	assert.Equal(t, "frontier request failed: unsupported provider: frontier", result.Message)
}

func TestProviderOrDefault(t *testing.T) {
	assert.Equal(t, "groq", providerOrDefault(""))
	assert.Equal(t, "groq", providerOrDefault("   "))
	assert.Equal(t, "openai", providerOrDefault("OpenAI"))
	assert.Equal(t, "anthropic", providerOrDefault(" anthropic "))
}

func TestAgentService_ModelOverride(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{
		Query:   "hello",
		APIKey:  "gsk_x",
		Options: jouletypes.AgentOptions{Model: "llama-3.1-8b-instant"},
	})
	assert.Equal(t, "llama-3.1-8b-instant", fake.model)
}

func TestAgentService_ByzantineMode(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{
		Query:   "how efficient is my heat pump",
		APIKey:  "gsk_x",
		Options: jouletypes.AgentOptions{ByzantineMode: true},
	})

	assert.Equal(t, 0.9, fake.temperature)
	assert.Contains(t, fake.messages[0].Content, "BYZANTINE LITURGICAL MODE")

	last := fake.messages[len(fake.messages)-1]
	assert.Contains(t, last.Content, `Rejoice, Oh Coil Unfrosted!`)
	assert.True(t, strings.HasSuffix(last.Content, "User question: how efficient is my heat pump"))
}

func TestAgentService_HistoryLimitedToFiveUserTurns(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	var history []string
	for i := 1; i <= 8; i++ {
		history = append(history, fmt.Sprintf("question %d", i))
	}

	agent.Answer(AgentRequest{Query: "latest", APIKey: "gsk_x", History: history})

	// system + 5 history turns + final user turn
	require.Len(t, fake.messages, 7)
	assert.Equal(t, "question 4", fake.messages[1].Content)
	assert.Equal(t, "question 8", fake.messages[5].Content)
	for _, msg := range fake.messages[1:] {
		assert.Equal(t, "user", msg.Role)
	}
}

func TestAgentService_ContextIncludesSystemSpecs(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{
		Query:    "tell me about my setup",
		APIKey:   "gsk_x",
		Settings: testAgentSettings(),
		Location: &jouletypes.Location{City: "Blairsville", State: "GA"},
	})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "System: heat pump, HSPF2: 9, SEER2: 16, Capacity: 36k BTU")
	assert.Contains(t, last, "Thermostat settings: Winter 70°F, Summer 74°F")
	assert.Contains(t, last, "Home: 2,000 sq ft")
	assert.Contains(t, last, "Location: Blairsville, GA")
}

func TestAgentService_ContextRatesOnlyForCostQuestions(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{Query: "why is my bill so expensive", APIKey: "gsk_x", Settings: testAgentSettings()})
	withRates := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, withRates, "Electricity rate: $0.120/kWh")
	assert.Contains(t, withRates, "Gas rate: $1.200/therm")

	agent.Answer(AgentRequest{Query: "tell me about my setup", APIKey: "gsk_x", Settings: testAgentSettings()})
	withoutRates := fake.messages[len(fake.messages)-1].Content
	assert.NotContains(t, withoutRates, "Electricity rate")
}

func TestAgentService_ContextMissingSettings(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{Query: "tell me about my setup", APIKey: "gsk_x"})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "System: Settings not available")
}

func TestAgentService_ContextDeviceState(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{
		Query:  "what is the current temp",
		APIKey: "gsk_x",
		Device: &jouletypes.DeviceState{CurrentTemp: 68.5, HVACMode: "heat", HasData: true},
	})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "Current: 68.5°F indoor, mode: heat")

	agent.Answer(AgentRequest{Query: "what is the current temp", APIKey: "gsk_x"})
	last = fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "No live thermostat data available")
}

func TestAgentService_ContextBalancePoint(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{Query: "when does aux heat kick in", APIKey: "gsk_x", Settings: testAgentSettings()})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "Balance point")
}

func TestAgentService_KnowledgeBlockForTechnicalQuestions(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{Query: "what is my balance point", APIKey: "gsk_x", Settings: testAgentSettings()})
	technical := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, technical, "RELEVANT HVAC ENGINEERING KNOWLEDGE")

	agent.Answer(AgentRequest{Query: "good morning", APIKey: "gsk_x", Settings: testAgentSettings()})
	greeting := fake.messages[len(fake.messages)-1].Content
	assert.NotContains(t, greeting, "RELEVANT HVAC ENGINEERING KNOWLEDGE")
}

func TestAgentService_SalesEscalationOnUncertainAnswer(t *testing.T) {
	fake := &fakeLLMClient{result: &jouletypes.AgentResult{
		Success: true,
		Message: "I don't know the answer to that, sorry. You could try asking the manufacturer about it directly.",
	}}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "how much does shipping cost", APIKey: "gsk_x"})

	require.True(t, result.Success)
	assert.Contains(t, result.Message, "please message the seller directly on eBay: "+StoreURL)
}

func TestAgentService_SalesEscalationOnShortAnswer(t *testing.T) {
	fake := &fakeLLMClient{result: &jouletypes.AgentResult{Success: true, Message: "Maybe."}}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "can I buy two", APIKey: "gsk_x"})
	assert.Contains(t, result.Message, "message the seller directly on eBay")
}

func TestAgentService_NoEscalationOnConfidentSalesAnswer(t *testing.T) {
	confident := "The Bridge tier ships within two business days and includes the HomeKit bridge, power supply, and mounting hardware."
	fake := &fakeLLMClient{result: &jouletypes.AgentResult{Success: true, Message: confident}}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "what does shipping include", APIKey: "gsk_x"})
	assert.Equal(t, confident, result.Message)
}

func TestAgentService_NoEscalationOnNonSalesQuestion(t *testing.T) {
	fake := &fakeLLMClient{result: &jouletypes.AgentResult{Success: true, Message: "I don't know."}}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "what is the meaning of life", APIKey: "gsk_x"})
	assert.Equal(t, "I don't know.", result.Message)
}

func TestAgentService_ErrorResultsPassThrough(t *testing.T) {
	fake := &fakeLLMClient{result: &jouletypes.AgentResult{
		Error:       true,
		RateLimited: true,
		Message:     "Rate limit exceeded. Please wait a moment and try again.",
	}}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{Query: "hello", APIKey: "gsk_x"})
	assert.True(t, result.Error)
	assert.True(t, result.RateLimited)
}

func TestAgentService_CSVBlockForEfficiencyQuestions(t *testing.T) {
	diags := NewDiagnosticsService("")
	require.NoError(t, diags.Store(&jouletypes.DiagnosticsSnapshot{
		Issues: []jouletypes.DiagnosticIssue{{Type: jouletypes.IssueShortCycling, Description: "Short cycling detected: 7.2 cycles/hour"}},
	}, &jouletypes.CSVInfo{FileName: "data.csv", DataPoints: 1440}))

	fake := &fakeLLMClient{}
	agent := NewAgentService(NewClientFactory(), NewKnowledgeService(), NewSalesService(), diags, nil)
	agent.SetClient(fake)

	agent.Answer(AgentRequest{Query: "is my system short cycling", APIKey: "gsk_x"})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "CSV ANALYSIS DATA")
	assert.Contains(t, last, "Short cycling detected: 7.2 cycles/hour")
	assert.Contains(t, last, "CSV data points available: 1440 rows")
}

func TestAgentService_CSVBlockAbsentWithoutData(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{Query: "is my system short cycling", APIKey: "gsk_x"})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "CSV Analysis Data: Not available")
}

func TestAgentService_ThresholdsFromThermostat(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := NewAgentService(NewClientFactory(), NewKnowledgeService(), NewSalesService(), nil, NewThermostatService(""))
	agent.SetClient(fake)

	agent.Answer(AgentRequest{Query: "tell me about my setup", APIKey: "gsk_x", Settings: testAgentSettings()})

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "Heat Differential: 0.5°F")
	assert.Contains(t, last, "Compressor Min Cycle Off: 300s (5 min)")
}
