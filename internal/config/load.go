package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/quorum/internal/errors"
)

// newViperInstance creates a new Viper instance with standard quorum
// configuration: environment variable prefix (QUORUM_), key replacer,
// and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("QUORUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error. Missing config files are expected in many scenarios.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (QUORUM_* prefix)
//  2. Project config (.quorum/config.yaml)
//  3. Global config (~/.quorum/config.yaml)
//  4. Built-in defaults
//
// The function returns an error only for actual configuration problems,
// not for missing config files.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	// Global config provides user-wide defaults that can be overridden
	// per project.
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	// Project config merges over global.
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Dur("timeout", cfg.Timeout).
		Str("output_dir", cfg.OutputDir).
		Int("providers", len(cfg.Providers)).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// loadGlobalConfig attempts to load the global config file.
// Returns nil if the file doesn't exist or home cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil //nolint:nilerr // No home directory means no global config
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return nil //nolint:nilerr // Missing global config is not an error
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config")
	}
	return nil
}

// loadProjectConfig attempts to merge the project config file over the
// currently loaded configuration.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if _, statErr := os.Stat(path); statErr != nil {
		return nil //nolint:nilerr // Missing project config is not an error
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config")
	}
	return nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// The duration hook lets config files express timeouts as "20m" or "90s".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
