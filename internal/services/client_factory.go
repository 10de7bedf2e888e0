package services

import (
	"fmt"
	"sync"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// ClientFactory creates and caches LLM clients per provider and API key.
// Groq is the default provider; the others keep the orchestrator
// provider-neutral.
type ClientFactory struct {
	mu      sync.RWMutex
	clients map[string]jouletypes.LLMClient
}

// NewClientFactory creates an empty client factory.
func NewClientFactory() *ClientFactory {
	return &ClientFactory{clients: make(map[string]jouletypes.LLMClient)}
}

// Name returns the service name "client_factory" for registration.
func (f *ClientFactory) Name() string {
	return "client_factory"
}

// Initialize is a no-op; clients are created on demand.
func (f *ClientFactory) Initialize() error {
	return nil
}

// GetClient returns a cached or new client for the provider and API key.
func (f *ClientFactory) GetClient(provider, apiKey string) (jouletypes.LLMClient, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key cannot be empty for provider '%s'", provider)
	}

	cacheKey := provider + ":" + apiKey

	f.mu.RLock()
	if client, exists := f.clients[cacheKey]; exists {
		f.mu.RUnlock()
		logger.Debug("returning cached provider client", "provider", provider)
		return client, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, exists := f.clients[cacheKey]; exists {
		return client, nil
	}

	var client jouletypes.LLMClient
	switch provider {
	case "groq":
		client = NewGroqClient(apiKey)
	case "openai":
		client = NewOpenAIClient(apiKey)
	case "anthropic":
		client = NewAnthropicClient(apiKey)
	case "gemini":
		client = NewGeminiClient(apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	f.clients[cacheKey] = client
	logger.Debug("created provider client", "provider", provider)
	return client, nil
}
