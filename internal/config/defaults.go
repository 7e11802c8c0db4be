package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/quorum/internal/constants"
	"github.com/mrz1836/quorum/internal/domain"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Timeout:   constants.DefaultProviderTimeout,
		OutputDir: constants.DefaultReportsDir,
		Providers: map[string]ProviderConfig{
			string(domain.ProviderClaude): defaultProviderConfig(domain.ProviderClaude),
			string(domain.ProviderCodex):  defaultProviderConfig(domain.ProviderCodex),
			string(domain.ProviderGemini): defaultProviderConfig(domain.ProviderGemini),
		},
	}
}

// defaultProviderConfig returns the built-in settings for one provider.
// The generic provider is disabled until the user configures a command.
func defaultProviderConfig(p domain.Provider) ProviderConfig {
	return ProviderConfig{
		Enabled: p != domain.ProviderGeneric,
		Model:   p.DefaultModel(),
	}
}

// setDefaults applies default values to a Viper instance.
// These form the lowest-precedence configuration layer.
func setDefaults(v *viper.Viper) {
	v.SetDefault("timeout", constants.DefaultProviderTimeout)
	v.SetDefault("output_dir", constants.DefaultReportsDir)

	for _, p := range []domain.Provider{domain.ProviderClaude, domain.ProviderCodex, domain.ProviderGemini} {
		v.SetDefault("providers."+string(p)+".enabled", true)
		v.SetDefault("providers."+string(p)+".model", p.DefaultModel())
	}
	v.SetDefault("providers."+string(domain.ProviderGeneric)+".enabled", false)
}
