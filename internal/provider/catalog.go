// Package provider turns per-provider configuration and an assembled prompt
// into shell-free command specifications.
//
// IMPORTANT: This package may import internal/config, internal/constants,
// internal/domain, and internal/errors. It MUST NOT import internal/runner
// or internal/cli, and it must never execute anything.
package provider

import (
	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

// Info contains provider-specific invocation metadata.
// PromptViaStdin is a fixed, provider-specific policy: whether the assembled
// prompt is delivered on standard input or as a trailing argument is not
// configurable per call.
type Info struct {
	// Provider is the catalog key.
	Provider domain.Provider

	// Command is the CLI executable name (e.g., "claude").
	Command string

	// FallbackPaths lists filesystem locations consulted when the command
	// is not on the search path. Entries may start with "~/".
	FallbackPaths []string

	// PromptViaStdin selects standard-input prompt delivery; false means
	// the prompt is embedded as a literal trailing argument.
	PromptViaStdin bool

	// WritesRawFile marks providers that write their result to a file
	// instead of stdout.
	WritesRawFile bool

	// InstallHint tells the user how to install a missing CLI.
	InstallHint string

	// EnvVar is the API key environment variable name, used in diagnostics.
	EnvVar string
}

// catalog holds the fixed invocation policies for the built-in providers.
//
//nolint:gochecknoglobals // Constant-like structure
var catalog = map[domain.Provider]Info{
	domain.ProviderClaude: {
		Provider:       domain.ProviderClaude,
		Command:        "claude",
		FallbackPaths:  []string{"~/.claude/local/claude", "~/.local/bin/claude"},
		PromptViaStdin: true,
		InstallHint:    "install with: npm install -g @anthropic-ai/claude-code",
		EnvVar:         "ANTHROPIC_API_KEY",
	},
	domain.ProviderCodex: {
		Provider:       domain.ProviderCodex,
		Command:        "codex",
		FallbackPaths:  []string{"~/.codex/bin/codex", "~/.local/bin/codex"},
		PromptViaStdin: true,
		WritesRawFile:  true,
		InstallHint:    "install with: npm install -g @openai/codex",
		EnvVar:         "OPENAI_API_KEY",
	},
	domain.ProviderGemini: {
		Provider:       domain.ProviderGemini,
		Command:        "gemini",
		FallbackPaths:  []string{"~/.local/bin/gemini", "~/.npm-global/bin/gemini"},
		PromptViaStdin: false,
		InstallHint:    "install with: npm install -g @google/gemini-cli",
		EnvVar:         "GEMINI_API_KEY",
	},
	domain.ProviderGeneric: {
		Provider:       domain.ProviderGeneric,
		PromptViaStdin: true,
		InstallHint:    "configure providers.generic.command in .quorum/config.yaml",
	},
}

// Lookup returns the catalog entry for a provider.
func Lookup(p domain.Provider) (Info, error) {
	info, ok := catalog[p]
	if !ok {
		return Info{}, quorumerrors.Wrapf(quorumerrors.ErrUnknownProvider, "%s", p)
	}
	return info, nil
}
