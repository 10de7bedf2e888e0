package services

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// AnthropicClient implements the LLMClient interface for Anthropic's API.
// The underlying SDK client is created lazily on first request.
type AnthropicClient struct {
	apiKey string
	client *anthropic.Client
}

// NewAnthropicClient creates a new Anthropic client with lazy initialization.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{apiKey: apiKey}
}

// GetProviderName returns the provider name for this client.
func (c *AnthropicClient) GetProviderName() string {
	return "anthropic"
}

// IsConfigured returns true if the client has an API key.
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *AnthropicClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("anthropic API key not configured")
	}

	client := anthropic.NewClient(option.WithAPIKey(c.apiKey))
	c.client = &client
	logger.Debug("Anthropic client initialized", "provider", "anthropic")
	return nil
}

// SendChatCompletion sends a message request to Anthropic and classifies
// the outcome. System-role messages fold into the Anthropic system prompt.
func (c *AnthropicClient) SendChatCompletion(model string, messages []jouletypes.ChatMessage, temperature float64, maxTokens int) (*jouletypes.AgentResult, error) {
	logger.Debug("Anthropic chat completion starting", "model", model)

	if err := c.initializeClientIfNeeded(); err != nil {
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}, nil
	}

	var systemPrompt string
	converted := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			if systemPrompt != "" {
				systemPrompt += "\n\n"
			}
			systemPrompt += msg.Content
		case "assistant":
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(maxTokens),
		Messages:    converted,
		Temperature: anthropic.Float(temperature),
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	message, err := c.client.Messages.New(context.Background(), params)
	if err != nil {
		return classifyProviderError("anthropic", err), nil
	}

	var content string
	for _, block := range message.Content {
		content += block.Text
	}
	if content == "" {
		return &jouletypes.AgentResult{Error: true, Message: "No response from Anthropic API"}, nil
	}

	result := &jouletypes.AgentResult{
		Success:     true,
		Message:     content,
		TotalTokens: int(message.Usage.InputTokens + message.Usage.OutputTokens),
	}
	logger.Debug("Anthropic response received", "content_length", len(content))
	return result, nil
}
