// Package config provides layered configuration loading for quorum.
//
// Configuration is resolved from built-in defaults, the global config file
// (~/.quorum/config.yaml), the project config file (.quorum/config.yaml),
// and QUORUM_* environment variables, in increasing precedence.
package config

import (
	"time"

	"github.com/mrz1836/quorum/internal/domain"
)

// Config is the root configuration for quorum.
type Config struct {
	// Timeout is the default per-provider invocation timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// OutputDir is where canonical report files are written, relative to
	// the working directory unless absolute.
	OutputDir string `mapstructure:"output_dir"`

	// Providers holds per-provider settings keyed by provider identifier.
	Providers map[string]ProviderConfig `mapstructure:"providers"`
}

// ProviderConfig holds the settings for one review provider.
type ProviderConfig struct {
	// Enabled controls whether the provider participates in a run.
	Enabled bool `mapstructure:"enabled"`

	// Model selects the provider's model.
	Model string `mapstructure:"model"`

	// Timeout overrides the global invocation timeout for this provider.
	Timeout time.Duration `mapstructure:"timeout"`

	// Sandbox selects the provider's sandbox policy flag, when supported.
	Sandbox string `mapstructure:"sandbox"`

	// ReasoningEffort selects the provider's reasoning-effort option,
	// when supported.
	ReasoningEffort string `mapstructure:"reasoning_effort"`

	// PermissionMode selects the provider's permission mode, when supported.
	PermissionMode string `mapstructure:"permission_mode"`

	// Command is the executable for the generic provider.
	Command string `mapstructure:"command"`

	// Args is the base argument vector for the generic provider.
	Args []string `mapstructure:"args"`

	// ExtraFlags are appended verbatim to the built argument vector.
	ExtraFlags []string `mapstructure:"extra_flags"`

	// Env holds environment variable overrides for the provider process.
	Env map[string]string `mapstructure:"env"`
}

// Provider returns the configuration for a provider, merged with defaults
// for fields the user did not set.
func (c *Config) Provider(p domain.Provider) ProviderConfig {
	pc, ok := c.Providers[string(p)]
	if !ok {
		pc = defaultProviderConfig(p)
	}
	if pc.Model == "" {
		pc.Model = p.DefaultModel()
	}
	if pc.Timeout <= 0 {
		pc.Timeout = c.Timeout
	}
	return pc
}
