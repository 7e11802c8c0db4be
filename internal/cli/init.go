package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/quorum/internal/config"
	"github.com/mrz1836/quorum/internal/constants"
	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

// AddInitCommand registers the init command on the root command.
func AddInitCommand(root *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter project configuration",
		Long: `Init writes a commented starter configuration to .quorum/config.yaml in
the current directory. Existing files are left alone unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing project configuration")
	root.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, force bool) error {
	path := filepath.Join(constants.QuorumHome, constants.ConfigFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	data, err := starterConfigYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(constants.QuorumHome, 0o755); err != nil {
		return quorumerrors.Wrapf(err, "failed to create %s", constants.QuorumHome)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Config file is not sensitive
		return quorumerrors.Wrapf(err, "failed to write %s", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// starterConfigYAML renders the default configuration as YAML. The config
// struct carries mapstructure tags for viper, so the YAML shape is built
// explicitly here to keep the on-disk keys stable.
func starterConfigYAML() ([]byte, error) {
	defaults := config.DefaultConfig()

	providerEntry := func(p domain.Provider) map[string]any {
		pc := defaults.Provider(p)
		return map[string]any{
			"enabled": pc.Enabled,
			"model":   pc.Model,
		}
	}

	doc := map[string]any{
		"timeout":    defaults.Timeout.String(),
		"output_dir": defaults.OutputDir,
		"providers": map[string]any{
			domain.ProviderClaude.String(): providerEntry(domain.ProviderClaude),
			domain.ProviderCodex.String():  providerEntry(domain.ProviderCodex),
			domain.ProviderGemini.String(): providerEntry(domain.ProviderGemini),
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, quorumerrors.Wrap(err, "failed to encode starter configuration")
	}
	return data, nil
}
