package jouletypes

// ChatMessage is one turn in the chat completion wire contract.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AgentResult is the three-way classified outcome of an agent call.
// Exactly one of Success or Error is set; NeedsAPIKey and RateLimited
// refine the error case.
type AgentResult struct {
	Success       bool
	Message       string
	Error         bool
	NeedsAPIKey   bool
	RateLimited   bool
	TotalTokens   int
	ExecutedTools []string
}

// AgentOptions tunes a single agent invocation. Provider selects the LLM
// backend ("groq", "openai", "anthropic", "gemini"); blank means groq.
type AgentOptions struct {
	Provider      string
	Model         string
	ByzantineMode bool
	Temperature   float64
	MaxTokens     int
}

// LLMClient is the provider-neutral chat completion interface produced by
// the client factory. Implementations classify transport failures into
// AgentResult rather than returning raw HTTP errors.
type LLMClient interface {
	GetProviderName() string
	IsConfigured() bool
	SendChatCompletion(model string, messages []ChatMessage, temperature float64, maxTokens int) (*AgentResult, error)
}

// Service is the lifecycle interface implemented by every registered
// service. Initialize is called once at startup, after construction.
type Service interface {
	Name() string
	Initialize() error
}
