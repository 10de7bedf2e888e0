package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient implements the LLMClient interface for Groq's OpenAI-compatible
// chat completions API. It is hand-rolled over net/http because response
// classification needs raw access to the status code and error body: 429
// and key-related failures map to distinct agent results instead of plain
// errors.
type GroqClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ChatCompletionRequest is the request payload for chat completions.
type ChatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []jouletypes.ChatMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

// ChatCompletionResponse is the wire response from chat completions.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   *ChatCompletionUsage   `json:"usage,omitempty"`
	Error   *ChatCompletionError   `json:"error,omitempty"`
}

// ChatCompletionChoice is one completion alternative.
type ChatCompletionChoice struct {
	Index        int                      `json:"index"`
	Message      *jouletypes.ChatMessage  `json:"message,omitempty"`
	FinishReason string                   `json:"finish_reason"`
}

// ChatCompletionUsage reports token accounting.
type ChatCompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionError is the provider's structured error body.
type ChatCompletionError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NewGroqClient creates a Groq client for the production endpoint.
func NewGroqClient(apiKey string) *GroqClient {
	return NewGroqClientWithBaseURL(apiKey, groqBaseURL)
}

// NewGroqClientWithBaseURL creates a Groq client against a custom base URL.
func NewGroqClientWithBaseURL(apiKey, baseURL string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetProviderName returns the provider name for this client.
func (c *GroqClient) GetProviderName() string {
	return "groq"
}

// IsConfigured returns true if the client has an API key.
func (c *GroqClient) IsConfigured() bool {
	return c.apiKey != ""
}

// SendChatCompletion posts one chat completion and classifies the outcome.
// Transport failures and non-2xx statuses come back as classified
// AgentResults, never raw errors, so callers have a single decision point.
func (c *GroqClient) SendChatCompletion(model string, messages []jouletypes.ChatMessage, temperature float64, maxTokens int) (*jouletypes.AgentResult, error) {
	logger.Debug("groq chat completion starting", "model", model, "messages", len(messages))

	if !c.IsConfigured() {
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}, nil
	}

	request := ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &jouletypes.AgentResult{
			Error:   true,
			Message: "Network error. Please check your internet connection and try again.",
		}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &jouletypes.AgentResult{Error: true, Message: fmt.Sprintf("Request failed: %v", err)}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return c.classifyFailure(resp.StatusCode, body), nil
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return &jouletypes.AgentResult{Error: true, Message: "No response from Groq API"}, nil
	}
	if completion.Error != nil {
		return c.classifyErrorMessage(completion.Error.Message, "Groq request failed: "+completion.Error.Message), nil
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message == nil || completion.Choices[0].Message.Content == "" {
		return &jouletypes.AgentResult{Error: true, Message: "No response from Groq API"}, nil
	}

	choice := completion.Choices[0]
	answer := choice.Message.Content
	if choice.FinishReason == "length" {
		answer = tidyTruncatedAnswer(answer)
	}

	result := &jouletypes.AgentResult{Success: true, Message: answer}
	if completion.Usage != nil {
		result.TotalTokens = completion.Usage.TotalTokens
	}
	logger.Debug("groq chat completion received", "content_length", len(answer), "tokens", result.TotalTokens)
	return result, nil
}

// classifyFailure maps a non-2xx response to an agent result. Key problems
// can surface as 401, as 400 with an explanatory body, or as other
// statuses with key-related text, so the body is always inspected.
func (c *GroqClient) classifyFailure(status int, body []byte) *jouletypes.AgentResult {
	var wire ChatCompletionResponse
	_ = json.Unmarshal(body, &wire)
	message := ""
	if wire.Error != nil {
		message = wire.Error.Message
	}
	logger.Debug("groq request failed", "status", status, "error", message)

	switch status {
	case http.StatusTooManyRequests:
		return &jouletypes.AgentResult{
			Error:       true,
			RateLimited: true,
			Message:     "Rate limit exceeded. Please wait a moment and try again.",
		}
	case http.StatusUnauthorized:
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}
	case http.StatusBadRequest:
		if message == "" {
			message = "Invalid request"
		}
		return c.classifyErrorMessage(message,
			fmt.Sprintf("Invalid request to Groq API: %s. Check your model name and request format.", message))
	default:
		if message == "" {
			message = http.StatusText(status)
		}
		return c.classifyErrorMessage(message, "Groq request failed: "+message)
	}
}

// classifyErrorMessage promotes key-related error text to a needs-api-key
// result; everything else keeps the provided generic message.
func (c *GroqClient) classifyErrorMessage(errText, generic string) *jouletypes.AgentResult {
	lower := strings.ToLower(errText)
	if strings.Contains(lower, "api key") || strings.Contains(lower, "authentication") || strings.Contains(lower, "unauthorized") {
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}
	}
	return &jouletypes.AgentResult{Error: true, Message: generic}
}

// tidyTruncatedAnswer trims a length-limited answer back to the last
// sentence boundary when one is near the end, then flags the truncation.
func tidyTruncatedAnswer(answer string) string {
	lastEnd := -1
	for _, mark := range []string{".", "!", "?"} {
		if idx := strings.LastIndex(answer, mark); idx > lastEnd {
			lastEnd = idx
		}
	}
	if lastEnd > len(answer)-50 && lastEnd >= 0 {
		answer = answer[:lastEnd+1]
	}
	return answer + "\n\n[Response was truncated due to length limit. Please ask a more specific question for a complete answer.]"
}
