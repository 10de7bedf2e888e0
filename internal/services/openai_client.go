package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// OpenAIClient implements the LLMClient interface for OpenAI's API. The
// underlying SDK client is created lazily on first request.
type OpenAIClient struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client with lazy initialization.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey}
}

// GetProviderName returns the provider name for this client.
func (c *OpenAIClient) GetProviderName() string {
	return "openai"
}

// IsConfigured returns true if the client has an API key.
func (c *OpenAIClient) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *OpenAIClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))
	c.client = &client
	logger.Debug("OpenAI client initialized", "provider", "openai")
	return nil
}

// SendChatCompletion sends a chat completion request to OpenAI and
// classifies the outcome into an agent result.
func (c *OpenAIClient) SendChatCompletion(model string, messages []jouletypes.ChatMessage, temperature float64, maxTokens int) (*jouletypes.AgentResult, error) {
	logger.Debug("OpenAI chat completion starting", "model", model)

	if err := c.initializeClientIfNeeded(); err != nil {
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}, nil
	}

	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			converted = append(converted, openai.SystemMessage(msg.Content))
		case "assistant":
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    converted,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	}

	completion, err := c.client.Chat.Completions.New(context.Background(), params)
	if err != nil {
		return classifyProviderError("openai", err), nil
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return &jouletypes.AgentResult{Error: true, Message: "No response from OpenAI API"}, nil
	}

	result := &jouletypes.AgentResult{
		Success:     true,
		Message:     completion.Choices[0].Message.Content,
		TotalTokens: int(completion.Usage.TotalTokens),
	}
	logger.Debug("OpenAI response received", "content_length", len(result.Message))
	return result, nil
}

// classifyProviderError maps SDK errors from any provider into the shared
// three-way agent classification by inspecting the error text.
func classifyProviderError(provider string, err error) *jouletypes.AgentResult {
	lower := strings.ToLower(err.Error())
	logger.Debug("provider request failed", "provider", provider, "error", err)

	switch {
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit"):
		return &jouletypes.AgentResult{
			Error:       true,
			RateLimited: true,
			Message:     "Rate limit exceeded. Please wait a moment and try again.",
		}
	case strings.Contains(lower, "401") || strings.Contains(lower, "api key") ||
		strings.Contains(lower, "authentication") || strings.Contains(lower, "unauthorized"):
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}
	default:
		return &jouletypes.AgentResult{Error: true, Message: fmt.Sprintf("%s request failed: %v", provider, err)}
	}
}
