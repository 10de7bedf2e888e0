package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// GeminiClient implements the LLMClient interface for Google Gemini. The
// underlying SDK client is created lazily on first request.
type GeminiClient struct {
	apiKey string
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client with lazy initialization.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey}
}

// GetProviderName returns the provider name for this client.
func (c *GeminiClient) GetProviderName() string {
	return "gemini"
}

// IsConfigured returns true if the client has an API key.
func (c *GeminiClient) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *GeminiClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("google API key not configured")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	logger.Debug("Gemini client initialized", "provider", "gemini")
	return nil
}

// SendChatCompletion sends a generate-content request to Gemini and
// classifies the outcome. System-role messages become the system
// instruction; assistant turns map to the model role.
func (c *GeminiClient) SendChatCompletion(model string, messages []jouletypes.ChatMessage, temperature float64, maxTokens int) (*jouletypes.AgentResult, error) {
	logger.Debug("Gemini chat completion starting", "model", model)

	if err := c.initializeClientIfNeeded(); err != nil {
		return &jouletypes.AgentResult{Error: true, NeedsAPIKey: true, Message: "Invalid API Key"}, nil
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(maxTokens),
	}

	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	result, err := c.client.Models.GenerateContent(context.Background(), model, contents, config)
	if err != nil {
		return classifyProviderError("gemini", err), nil
	}

	content := result.Text()
	if content == "" {
		return &jouletypes.AgentResult{Error: true, Message: "No response from Gemini API"}, nil
	}

	agentResult := &jouletypes.AgentResult{Success: true, Message: content}
	if result.UsageMetadata != nil {
		agentResult.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}
	logger.Debug("Gemini response received", "content_length", len(content))
	return agentResult, nil
}
