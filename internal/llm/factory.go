package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kuru2388/django-autoapi/internal/config"
)

// NewClient builds the client for the configured provider. A missing API key
// (after the env fallback) or an unknown provider yields a ConfigError.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "openai":
		key, err := resolveAPIKey(cfg.APIKey, "OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewOpenAIClient(key, cfg.Model, cfg.BaseURL), nil

	case "claude":
		key, err := resolveAPIKey(cfg.APIKey, "ANTHROPIC_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewClaudeClient(key, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		key, err := resolveAPIKey(cfg.APIKey, "GEMINI_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewGeminiClient(ctx, key, cfg.Model)

	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported llm provider: %s", cfg.Provider)}
	}
}

func resolveAPIKey(configured string, envVar string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", &ConfigError{Reason: fmt.Sprintf(
		"No API key configured.\n\n"+
			"Either:\n"+
			"  1) Set environment variable %s, or\n"+
			"  2) Set api_key in the [llm] section of autoapi.toml.\n",
		envVar,
	)}
}
