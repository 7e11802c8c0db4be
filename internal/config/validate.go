package config

import (
	"fmt"

	"github.com/mrz1836/quorum/internal/domain"
	"github.com/mrz1836/quorum/internal/errors"
)

// Validate checks a Config for values the pipeline cannot operate with.
// It returns sentinel-wrapped errors so callers can categorize failures
// with errors.Is().
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", errors.ErrConfigInvalidTimeout, cfg.Timeout)
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("%w: output_dir", errors.ErrEmptyValue)
	}

	for name, pc := range cfg.Providers {
		p := domain.Provider(name)
		if !p.IsValid() {
			return fmt.Errorf("%w: %q", errors.ErrUnknownProvider, name)
		}
		if pc.Timeout < 0 {
			return fmt.Errorf("%w: providers.%s.timeout must not be negative", errors.ErrConfigInvalidTimeout, name)
		}
		if p == domain.ProviderGeneric && pc.Enabled && pc.Command == "" {
			return fmt.Errorf("%w: providers.generic.command is required when enabled", errors.ErrConfigInvalidProvider)
		}
	}

	return nil
}
