package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"joule/internal/calc"
	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// defaultAgentModel is used when neither the caller nor the stored
// preference names a model.
const defaultAgentModel = "llama-3.3-70b-versatile"

// historyTurnsForContext limits how many prior raw queries ride along
// as conversation context.
const historyTurnsForContext = 5

// DiagnosticsProvider exposes cached analyzer output for context
// assembly. A nil provider means no uploaded data.
type DiagnosticsProvider interface {
	Snapshot() (*jouletypes.DiagnosticsSnapshot, error)
	CSVInfo() (*jouletypes.CSVInfo, error)
}

// ThermostatLoader reads the persisted thermostat document so threshold
// settings can be included in the agent context.
type ThermostatLoader interface {
	Load() (jouletypes.ThermostatSettings, error)
}

// AgentRequest carries everything one agent invocation needs. Device,
// Settings, Location, and History may all be empty; context assembly
// degrades per field.
type AgentRequest struct {
	Query    string
	APIKey   string
	Device   *jouletypes.DeviceState
	Settings map[string]interface{}
	Location *jouletypes.Location
	History  []string
	Options  jouletypes.AgentOptions
}

// AgentService turns a free-form question into a classified LLM answer.
// It assembles a data context from the stores it is wired to, sends one
// chat completion through the client factory, and post-processes sales
// answers that came back uncertain.
type AgentService struct {
	factory    *ClientFactory
	knowledge  *KnowledgeService
	sales      *SalesService
	diags      DiagnosticsProvider
	thermostat ThermostatLoader

	// client overrides factory lookup when set; used by tests.
	client jouletypes.LLMClient
}

// NewAgentService creates an agent service. knowledge, sales, diags,
// and thermostat are all optional.
func NewAgentService(factory *ClientFactory, knowledge *KnowledgeService, sales *SalesService, diags DiagnosticsProvider, thermostat ThermostatLoader) *AgentService {
	return &AgentService{
		factory:    factory,
		knowledge:  knowledge,
		sales:      sales,
		diags:      diags,
		thermostat: thermostat,
	}
}

// Name returns the service name "agent" for registration.
func (s *AgentService) Name() string {
	return "agent"
}

// Initialize is a no-op; the agent holds no resources of its own.
func (s *AgentService) Initialize() error {
	return nil
}

// SetClient pins the transport client, bypassing the factory.
func (s *AgentService) SetClient(client jouletypes.LLMClient) {
	s.client = client
}

// Answer runs one question through the LLM. A blank API key returns a
// needs-api-key result without touching the network. All transport and
// provider failures come back classified in the result, never as a
// returned error.
func (s *AgentService) Answer(req AgentRequest) *jouletypes.AgentResult {
	if strings.TrimSpace(req.APIKey) == "" {
		return &jouletypes.AgentResult{
			Error:       true,
			NeedsAPIKey: true,
			Message:     "🔑 Groq API key missing",
		}
	}

	context := s.buildContext(req.Query, req.Device, req.Settings, req.Location)
	byzantine := req.Options.ByzantineMode

	systemPrompt := minimalSystemPrompt
	if byzantine {
		systemPrompt = byzantineSystemPrompt
	}

	toolResults := s.runTools(req.Query, req.Settings)
	toolNames := make([]string, 0, len(toolResults))
	for _, tr := range toolResults {
		toolNames = append(toolNames, tr.Name)
	}

	userContent := context
	if len(toolResults) > 0 {
		userContent += "\n\nTOOL RESULTS:\n" + formatToolResults(toolResults)
	}
	if byzantine {
		userContent += "\n\n[REMEMBER: Respond ONLY in Byzantine liturgical chant style. Start with \"Oh\" and include \"Rejoice, Oh Coil Unfrosted!\" refrains.]"
	}
	userContent += "\n\nUser question: " + req.Query
	if len(toolResults) > 0 {
		userContent += "\n\nProvide a helpful response based on the tool results above."
	}

	messages := make([]jouletypes.ChatMessage, 0, historyTurnsForContext+2)
	messages = append(messages, jouletypes.ChatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range lastTurns(req.History, historyTurnsForContext) {
		messages = append(messages, jouletypes.ChatMessage{Role: "user", Content: turn})
	}
	messages = append(messages, jouletypes.ChatMessage{Role: "user", Content: userContent})

	model := req.Options.Model
	if model == "" {
		model = defaultAgentModel
	}
	temperature := req.Options.Temperature
	if temperature == 0 {
		temperature = 0.7
		if byzantine {
			temperature = 0.9
		}
	}
	maxTokens := req.Options.MaxTokens
	if maxTokens == 0 {
		maxTokens = 800
	}

	provider := providerOrDefault(req.Options.Provider)

	client := s.client
	if client == nil {
		var err error
		client, err = s.factory.GetClient(provider, req.APIKey)
		if err != nil {
			return &jouletypes.AgentResult{Error: true, Message: fmt.Sprintf("%s request failed: %v", providerLabel(provider), err)}
		}
	}

	logger.Debug("agent sending question", "provider", provider, "model", model, "context_length", len(context), "tools", strings.Join(toolNames, ","), "history_turns", len(req.History))
	result, err := client.SendChatCompletion(model, messages, temperature, maxTokens)
	if err != nil {
		return &jouletypes.AgentResult{Error: true, Message: fmt.Sprintf("%s request failed: %v", providerLabel(provider), err)}
	}

	if result.Success {
		result.Message = s.applySalesEscalation(req.Query, result.Message)
		result.ExecutedTools = toolNames
	}
	return result
}

// providerOrDefault normalizes the requested provider, falling back to
// groq when the preference is unset.
func providerOrDefault(provider string) string {
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" {
		return "groq"
	}
	return p
}

var providerLabels = map[string]string{
	"groq":      "Groq",
	"openai":    "OpenAI",
	"anthropic": "Anthropic",
	"gemini":    "Gemini",
}

func providerLabel(provider string) string {
	if label, ok := providerLabels[provider]; ok {
		return label
	}
	return provider
}

// uncertaintyPhrases mark an answer that failed to help a sales query.
var uncertaintyPhrases = []string{
	"i don't know",
	"i'm not sure",
	"i cannot",
	"i can't",
	"i'm unable",
	"i don't have",
	"i'm not certain",
	"i'm uncertain",
	"i'm not familiar",
	"i don't have information",
	"i don't have the answer",
	"i'm not able to",
	"unable to",
	"cannot answer",
	"don't have that information",
}

// applySalesEscalation appends the seller contact line when a sales
// question got an uncertain or too-short answer.
func (s *AgentService) applySalesEscalation(query, answer string) string {
	if s.sales == nil || !s.sales.HasSalesIntent(query) {
		return answer
	}
	lower := strings.ToLower(answer)
	uncertain := false
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lower, phrase) {
			uncertain = true
			break
		}
	}
	if !uncertain && len(strings.TrimSpace(answer)) >= 50 {
		return answer
	}
	return answer + "\n\nIf you need more specific information, please message the seller directly on eBay: " + StoreURL
}

// lastTurns returns up to n trailing entries of history, oldest first.
func lastTurns(history []string, n int) []string {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

var diagnosticKeywords = []string{
	"supply air", "return air", "delta", "cfm", "watt", "stage",
	"cop", "duty cycle", "lockout", "threshold", "btu", "coil temp",
}

var (
	efficiencyHomeRe     = regexp.MustCompile(`(?i)is.*my.*home.*efficient`)
	efficiencyHowRe      = regexp.MustCompile(`(?i)how.*efficient`)
	heatLossWhatRe       = regexp.MustCompile(`(?i)what.*my.*heat.*loss`)
	heatLossFactorRe     = regexp.MustCompile(`(?i)heat.*loss.*factor`)
	forecastInDaysRe     = regexp.MustCompile(`(?i)in\s+\d+\s+days?`)
	forecastWeekdayRe    = regexp.MustCompile(`(?i)(?:this|next)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun)`)
	technicalQuestionRe  = regexp.MustCompile(`(?i)manual [jsd]|ashrae|heat loss|load calculation|sizing|oversized|undersized|duct|airflow|ventilation|thermal comfort|comfort zone|heat pump|aux|strip|defrost|recovery|lockout|threshold|efficiency|hspf|seer|\bcop\b|\beer\b|balance point|\bdoe\b|nrel|tmy3|short cycl|dissipation|free heat|economic balance|clos(?:e|ing) vent|bill|predicted|forecast|sav(?:e|ings)|thermal decay|newton|cooling law|capacity|cfm|refrigerant|r-410a|r-454b|r-32|fault code|error code|troubleshoot|diagnostic|flame sensor|pressure switch|radiant|co2|carbon dioxide|merv|hepa|elevation|altitude|derate`)
	missingSensorNames   = []string{"supply air temperature", "return air temperature", "airflow (CFM)", "power draw (watts)", "coil temperature"}
)

// buildContext assembles the CONTEXT block for one question. Sections
// are included only when the question's vocabulary asks for them; the
// system specs, thresholds, and location always ride along so greetings
// still see the setup.
func (s *AgentService) buildContext(query string, device *jouletypes.DeviceState, settings map[string]interface{}, location *jouletypes.Location) string {
	lower := strings.ToLower(query)
	var b strings.Builder
	b.WriteString("CONTEXT:\n")

	isDiagnostic := containsAny(lower, diagnosticKeywords...)
	if isDiagnostic {
		b.WriteString("\nDIAGNOSTIC DATA CHECK:\n")
		available := []string{}
		if device != nil && device.HasData {
			available = append(available, "indoor temperature", "indoor humidity", "HVAC mode", "running state")
		}
		if len(available) > 0 {
			b.WriteString("Available: " + strings.Join(available, ", ") + "\n")
		}
		b.WriteString("Missing sensors: " + strings.Join(missingSensorNames, ", ") + "\n")
		b.WriteString("These require specialized sensors/equipment not available in this system.\n")
		if device != nil && device.HasData {
			fmt.Fprintf(&b, "\nBasic data available: %s°F indoor, mode: %s", formatNumber(device.CurrentTemp), device.HVACMode)
		}
	}

	isShortCycling := strings.Contains(lower, "short cycling") || strings.Contains(lower, "short cycle") ||
		strings.Contains(lower, "cycling") || strings.Contains(lower, "system performance") ||
		(strings.Contains(lower, "bill") && (strings.Contains(lower, "high") || strings.Contains(lower, "expensive")))
	isEfficiency := strings.Contains(lower, "efficiency") || strings.Contains(lower, "hers") ||
		strings.Contains(lower, "energy rating") || strings.Contains(lower, "home performance") ||
		strings.Contains(lower, "building performance") || strings.Contains(lower, "thermal performance") ||
		efficiencyHomeRe.MatchString(lower) || efficiencyHowRe.MatchString(lower) ||
		heatLossWhatRe.MatchString(lower) || heatLossFactorRe.MatchString(lower)

	if isShortCycling || isEfficiency {
		b.WriteString(s.csvAnalysisContext())
	}

	isForecast := containsAny(lower, "forecast", "coldest", "warmest", "next week", "next month",
		"7 day", "7-day", "tomorrow", "day after") ||
		forecastInDaysRe.MatchString(lower) || forecastWeekdayRe.MatchString(lower)
	if isForecast {
		b.WriteString("\n\n7-Day Forecast Data: Not available. Run a forecast on the 7-Day Cost Forecaster page to see temperature predictions.\n")
	}

	if !isDiagnostic && containsAny(lower, "temp", "mode", "running", "status") {
		if device != nil && device.HasData {
			fmt.Fprintf(&b, "\nCurrent: %s°F indoor, mode: %s", formatNumber(device.CurrentTemp), device.HVACMode)
			if device.CurrentHumidity > 0 {
				fmt.Fprintf(&b, ", %s%% humidity", formatNumber(device.CurrentHumidity))
			}
		} else {
			b.WriteString("\nNo live thermostat data available")
		}
	}

	if len(settings) > 0 {
		b.WriteString(s.systemSpecsContext(lower, settings))
	} else {
		b.WriteString("\nSystem: Settings not available - user should configure system details in Settings page")
	}

	if containsAny(lower, "balance point", "balancepoint", "aux", "switchover", "auxiliary") {
		b.WriteString(balancePointContext(settings))
	}

	if location != nil && (location.City != "" || location.Lat != 0 || location.Lon != 0) {
		if location.City != "" && location.State != "" {
			fmt.Fprintf(&b, "\nLocation: %s, %s", location.City, location.State)
		} else if location.City != "" {
			fmt.Fprintf(&b, "\nLocation: %s", location.City)
		} else {
			fmt.Fprintf(&b, "\nLocation: %.3f, %.3f (coordinates only)", location.Lat, location.Lon)
		}
	} else {
		b.WriteString("\nLocation: Not available. Set your city in Settings so climate context can be included.")
	}

	if s.knowledge != nil && technicalQuestionRe.MatchString(lower) {
		if content, ok := s.knowledge.Query(query); ok {
			snippet := content
			truncated := false
			if len(snippet) > 2000 {
				snippet = snippet[:2000]
				truncated = true
			}
			b.WriteString("\n\n═══════════════════════════════════════════════════\n")
			b.WriteString("CRITICAL: USE THIS KNOWLEDGE BASE CONTENT TO ANSWER THE QUESTION\n")
			b.WriteString("═══════════════════════════════════════════════════\n\n")
			b.WriteString(snippet)
			b.WriteString("\n\n═══════════════════════════════════════════════════\n")
			b.WriteString("IMPORTANT: Base your answer on the knowledge above. Cite specific standards, causes, symptoms, and solutions from the knowledge base.\n")
			b.WriteString("═══════════════════════════════════════════════════\n")
			if truncated {
				b.WriteString("\n[Note: Additional knowledge base content was truncated for length]")
			}
		}
	}

	return b.String()
}

// csvAnalysisContext renders the measured-data block from the cached
// analyzer snapshot, or the not-available line when nothing is uploaded.
func (s *AgentService) csvAnalysisContext() string {
	if s.diags == nil {
		return "\n\nCSV Analysis Data: Not available. Upload thermostat CSV data on the System Performance Analyzer page to get detailed cycling analysis.\n"
	}
	snap, err := s.diags.Snapshot()
	if err != nil {
		return "\n\nCSV Analysis Data: Not available. Upload thermostat CSV data on the System Performance Analyzer page to get detailed cycling analysis.\n"
	}

	var b strings.Builder
	b.WriteString("\n\n═══════════════════════════════════════════════════════════════\n")
	b.WriteString("CSV ANALYSIS DATA (from System Performance Analyzer - REAL MEASURED DATA)\n")
	b.WriteString("═══════════════════════════════════════════════════════════════\n")
	b.WriteString("CRITICAL: This is ACTUAL MEASURED DATA from your thermostat CSV upload.\n")
	b.WriteString("ALWAYS USE THESE VALUES over any calculated estimates when answering efficiency questions.\n")
	if snap == nil || len(snap.Issues) == 0 {
		b.WriteString("Latest analysis results: no issues detected.\n")
	} else {
		b.WriteString("Latest analysis results:\n")
		for _, issue := range snap.Issues {
			fmt.Fprintf(&b, "- %s\n", issue.Description)
		}
	}
	if info, err := s.diags.CSVInfo(); err == nil && info != nil && info.DataPoints > 0 {
		fmt.Fprintf(&b, "- CSV data points available: %d rows\n", info.DataPoints)
	}
	return b.String()
}

// systemSpecsContext renders the always-on system description plus the
// cost, thermostat, threshold, and square-footage lines.
func (s *AgentService) systemSpecsContext(lower string, settings map[string]interface{}) string {
	var b strings.Builder

	systemType := "unknown system"
	switch settingString(settings, "primarySystem") {
	case "heatPump":
		systemType = "heat pump"
	case "gasFurnace":
		systemType = "gas furnace"
	case "":
	default:
		systemType = settingString(settings, "primarySystem")
	}
	b.WriteString("\nSystem: " + systemType)

	if hspf2, ok := settingFloat(settings, "hspf2"); ok {
		fmt.Fprintf(&b, ", HSPF2: %s", formatNumber(hspf2))
	}
	if seer2, ok := settingFloat(settings, "efficiency"); ok {
		fmt.Fprintf(&b, ", SEER2: %s", formatNumber(seer2))
	}
	if capacity, ok := settingFloat(settings, "capacity"); ok {
		fmt.Fprintf(&b, ", Capacity: %sk BTU", formatNumber(capacity))
	}

	if containsAny(lower, "cost", "bill", "expense", "savings") {
		if rate, ok := settingFloat(settings, "utilityCost"); ok {
			fmt.Fprintf(&b, "\nElectricity rate: $%.3f/kWh", rate)
		}
		if rate, ok := settingFloat(settings, "gasCost"); ok {
			fmt.Fprintf(&b, ", Gas rate: $%.3f/therm", rate)
		}
	}

	if winter, ok := settingFloat(settings, "winterThermostat"); ok {
		fmt.Fprintf(&b, "\nThermostat settings: Winter %s°F", formatNumber(winter))
	}
	if summer, ok := settingFloat(settings, "summerThermostat"); ok {
		fmt.Fprintf(&b, ", Summer %s°F", formatNumber(summer))
	}

	if s.thermostat != nil {
		if doc, err := s.thermostat.Load(); err == nil {
			t := doc.Thresholds
			fmt.Fprintf(&b, "\nThermostat Threshold Settings: Heat Differential: %s°F, Cool Differential: %s°F, Compressor Min Cycle Off: %ds (%d min)",
				formatNumber(t.HeatDifferential), formatNumber(t.CoolDifferential),
				t.CompressorMinCycleOff, t.CompressorMinCycleOff/60)
		}
	}

	if sqft, ok := settingFloat(settings, "squareFeet"); ok {
		fmt.Fprintf(&b, "\nHome: %s sq ft", formatWithCommas(sqft))
	}
	return b.String()
}

// balancePointContext computes and renders the balance point line. The
// solver never panics and nil means insufficient data, so this only
// produces text, never an error.
func balancePointContext(settings map[string]interface{}) string {
	in := balancePointInputFromSettings(settings)
	result := calc.CalculateBalancePoint(in)
	if result.BalancePoint != nil {
		line := fmt.Sprintf("\nBalance point: %s°F", formatNumber(*result.BalancePoint))
		if result.HeatLossFactor > 0 {
			line += fmt.Sprintf(" (Heat loss: %s BTU/hr per °F)", formatWithCommas(result.HeatLossFactor))
		}
		return line
	}
	line := fmt.Sprintf("\nBalance point: Calculation returned no crossover. Your system may be extremely oversized (balance point well below 20°F) or undersized (balance point well above 60°F). Current settings: %sk BTU, HSPF2: %s, %s sq ft.",
		formatNumber(in.Tons*12), formatNumber(in.HSPF2), formatWithCommas(in.SquareFeet))
	if result.HeatLossFactor > 0 {
		line += fmt.Sprintf(" Heat loss factor: %s BTU/hr per °F.", formatWithCommas(result.HeatLossFactor))
	}
	return line
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// settingFloat reads a numeric setting tolerating the types viper and
// JSON hand back.
func settingFloat(settings map[string]interface{}, key string) (float64, bool) {
	raw, ok := settings[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func settingString(settings map[string]interface{}, key string) string {
	if raw, ok := settings[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

// formatNumber renders a float without trailing zeros: 9 not 9.0,
// 0.5 not 0.500000.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatWithCommas renders a number rounded to the nearest integer with
// thousands separators.
func formatWithCommas(v float64) string {
	n := int64(v + 0.5)
	if v < 0 {
		n = int64(v - 0.5)
	}
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if negative {
		s = "-" + s
	}
	return s
}
