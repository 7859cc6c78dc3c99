package config

import "github.com/curblens/curbsign/internal/providers"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Provider: providers.ClaudeName,
		Providers: map[string]ProviderCfg{
			providers.ClaudeName: {
				APIKey: "${ANTHROPIC_API_KEY}",
			},
			providers.GPT4Name: {
				APIKey: "${OPENAI_API_KEY}",
			},
		},
		LogLevel: "info",
	}
}
