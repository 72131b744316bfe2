package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuru2388/django-autoapi/internal/config"
)

func TestNewClientMissingKeyIsConfigError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewClientKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	client, err := NewClient(context.Background(), config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})

	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewClientDefaultsToOpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), config.LLMConfig{APIKey: "sk-test", Model: "gpt-4o-mini"})

	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewClientClaude(t *testing.T) {
	client, err := NewClient(context.Background(), config.LLMConfig{Provider: "claude", APIKey: "key", Model: "claude-3-5-haiku-latest"})

	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, client)
}

func TestNewClientUnknownProviderIsConfigError(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "bard", APIKey: "key"})

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(&ConfigError{Reason: "no key"}))
	assert.False(t, IsConfigError(errors.New("rate limited")))
	assert.False(t, IsConfigError(nil))
}
