package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFactory_ProviderSwitch(t *testing.T) {
	factory := NewClientFactory()

	tests := []struct {
		provider string
	}{
		{"groq"},
		{"openai"},
		{"anthropic"},
		{"gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			client, err := factory.GetClient(tt.provider, "key-123")
			require.NoError(t, err)
			assert.Equal(t, tt.provider, client.GetProviderName())
			assert.True(t, client.IsConfigured())
		})
	}
}

func TestClientFactory_CachesPerProviderAndKey(t *testing.T) {
	factory := NewClientFactory()

	first, err := factory.GetClient("groq", "key-a")
	require.NoError(t, err)
	second, err := factory.GetClient("groq", "key-a")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := factory.GetClient("groq", "key-b")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestClientFactory_EmptyProvider(t *testing.T) {
	factory := NewClientFactory()

	_, err := factory.GetClient("", "key")
	require.Error(t, err)
	assert.Equal(t, "provider cannot be empty", err.Error())
}

func TestClientFactory_EmptyKey(t *testing.T) {
	factory := NewClientFactory()

	_, err := factory.GetClient("groq", "")
	require.Error(t, err)
	assert.Equal(t, "API key cannot be empty for provider 'groq'", err.Error())
}

func TestClientFactory_UnsupportedProvider(t *testing.T) {
	factory := NewClientFactory()

	_, err := factory.GetClient("cohere", "key")
	require.Error(t, err)
	assert.Equal(t, "unsupported provider: cohere", err.Error())
}
