package provider

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

func TestResolveExecutable(t *testing.T) {
	t.Run("finds the command on the search path", func(t *testing.T) {
		// sh is present on every supported platform.
		path := ResolveExecutable("sh", nil)

		assert.True(t, filepath.IsAbs(path))
	})

	t.Run("uses a fallback path when lookup fails", func(t *testing.T) {
		dir := t.TempDir()
		fake := filepath.Join(dir, "quorum-fake-cli")
		require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755))

		path := ResolveExecutable("quorum-definitely-missing", []string{fake})

		assert.Equal(t, fake, path)
	})

	t.Run("skips non-executable fallbacks", func(t *testing.T) {
		dir := t.TempDir()
		plain := filepath.Join(dir, "not-executable")
		require.NoError(t, os.WriteFile(plain, []byte("data"), 0o644))

		path := ResolveExecutable("quorum-definitely-missing", []string{plain})

		assert.Equal(t, "quorum-definitely-missing", path)
	})

	t.Run("returns the bare name when nothing resolves", func(t *testing.T) {
		path := ResolveExecutable("quorum-definitely-missing", []string{"/nonexistent/cli"})

		assert.Equal(t, "quorum-definitely-missing", path)
	})
}

func TestExpandHome(t *testing.T) {
	t.Run("expands a leading tilde", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, ".local", "bin", "claude"), ExpandHome("~/.local/bin/claude"))
	})

	t.Run("leaves other paths alone", func(t *testing.T) {
		assert.Equal(t, "/usr/bin/claude", ExpandHome("/usr/bin/claude"))
		assert.Equal(t, "relative/path", ExpandHome("relative/path"))
	})
}

func TestLookup(t *testing.T) {
	t.Run("known providers have catalog entries", func(t *testing.T) {
		for _, p := range domain.KnownProviders() {
			info, err := Lookup(p)
			require.NoError(t, err)
			assert.Equal(t, p, info.Provider)
		}
	})

	t.Run("prompt delivery policy is fixed per provider", func(t *testing.T) {
		claude, err := Lookup(domain.ProviderClaude)
		require.NoError(t, err)
		assert.True(t, claude.PromptViaStdin)

		gemini, err := Lookup(domain.ProviderGemini)
		require.NoError(t, err)
		assert.False(t, gemini.PromptViaStdin)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := Lookup(domain.Provider("mystery"))

		assert.ErrorIs(t, err, quorumerrors.ErrUnknownProvider)
	})
}

func TestWrapExecutionError(t *testing.T) {
	info, err := Lookup(domain.ProviderClaude)
	require.NoError(t, err)

	t.Run("missing CLI includes the install hint", func(t *testing.T) {
		wrapped := WrapExecutionError(info, errors.New("exec: \"claude\": executable file not found in $PATH"), nil)

		assert.ErrorIs(t, wrapped, quorumerrors.ErrProviderInvocation)
		assert.Contains(t, wrapped.Error(), "npm install")
	})

	t.Run("API key failures are called out", func(t *testing.T) {
		wrapped := WrapExecutionError(info, errors.New("exit status 1"), []byte("Invalid API key provided"))

		assert.ErrorIs(t, wrapped, quorumerrors.ErrProviderInvocation)
		assert.Contains(t, wrapped.Error(), "API key")
	})

	t.Run("other failures keep the stderr text", func(t *testing.T) {
		wrapped := WrapExecutionError(info, errors.New("exit status 2"), []byte("panic: boom"))

		assert.Contains(t, wrapped.Error(), "panic: boom")
	})

	t.Run("empty stderr keeps the raw error", func(t *testing.T) {
		wrapped := WrapExecutionError(info, errors.New("exit status 3"), nil)

		assert.Contains(t, wrapped.Error(), "exit status 3")
	})
}
