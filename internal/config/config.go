package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AppsConfig filters which apps are in scope for a run. An absent or empty
// include list means "all non-contrib apps"; exclude labels are always
// dropped, even when listed in include.
type AppsConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type Config struct {
	Apps AppsConfig `toml:"apps"`
	LLM  LLMConfig  `toml:"llm"`
}

func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
	}
}

// Load reads a TOML config file. A missing file is not an error: the
// defaults apply, the same way the original tool treated its settings block
// as optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	return cfg, nil
}
