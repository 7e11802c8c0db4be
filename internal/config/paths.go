package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/quorum/internal/constants"
	"github.com/mrz1836/quorum/internal/errors"
)

// GlobalConfigDir returns the path to the global quorum configuration
// directory, typically ~/.quorum on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.QuorumHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration
// directory. This is always .quorum relative to the project root.
func ProjectConfigDir() string {
	return constants.QuorumHome
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.quorum/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file. This is always .quorum/config.yaml relative to the project root.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.ConfigFileName)
}
