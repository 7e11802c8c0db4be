package provider

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/quorum/internal/config"
	"github.com/mrz1836/quorum/internal/domain"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Timeout = 5 * time.Minute
	cfg.OutputDir = "reports"
	return cfg
}

func newTestBuilder(cfg *config.Config) *SpecBuilder {
	return NewSpecBuilder(cfg, zerolog.Nop())
}

func TestBuildClaude(t *testing.T) {
	spec, enabled, err := newTestBuilder(testConfig()).Build(domain.ProviderClaude, "review this", "/work")

	require.NoError(t, err)
	require.True(t, enabled)

	assert.Equal(t, domain.ProviderClaude, spec.Provider)
	assert.Contains(t, spec.Args, "-p")
	assert.Contains(t, spec.Args, "stream-json")
	assert.Contains(t, spec.Args, "--model")

	// Prompt goes to stdin, never into the argument vector.
	assert.Equal(t, "review this", spec.Input)
	assert.NotContains(t, spec.Args, "review this")

	assert.Equal(t, filepath.Join("/work", "reports", "claude-review.json"), spec.OutputPath)
	assert.Empty(t, spec.RawOutputPath)
	assert.Equal(t, 5*time.Minute, spec.Timeout)
}

func TestBuildCodex(t *testing.T) {
	cfg := testConfig()
	pc := cfg.Providers[string(domain.ProviderCodex)]
	pc.Sandbox = "read-only"
	pc.ReasoningEffort = "high"
	cfg.Providers[string(domain.ProviderCodex)] = pc

	spec, enabled, err := newTestBuilder(cfg).Build(domain.ProviderCodex, "prompt text", "/work")

	require.NoError(t, err)
	require.True(t, enabled)

	assert.Equal(t, []string{"exec", "--json"}, spec.Args[:2])
	assert.Contains(t, spec.Args, "--sandbox")
	assert.Contains(t, spec.Args, "model_reasoning_effort=high")

	// Codex writes its result to a secondary file and reads the prompt
	// from stdin via the trailing "-".
	assert.Contains(t, spec.Args, "--output-last-message")
	assert.Equal(t, filepath.Join("/work", "reports", "codex-raw.txt"), spec.RawOutputPath)
	assert.Equal(t, "-", spec.Args[len(spec.Args)-1])
	assert.Equal(t, "prompt text", spec.Input)
}

func TestBuildGemini(t *testing.T) {
	spec, enabled, err := newTestBuilder(testConfig()).Build(domain.ProviderGemini, "prompt text", "")

	require.NoError(t, err)
	require.True(t, enabled)

	// Gemini takes the prompt as a literal trailing argument, not stdin.
	assert.Empty(t, spec.Input)
	assert.Equal(t, "--prompt", spec.Args[len(spec.Args)-2])
	assert.Equal(t, "prompt text", spec.Args[len(spec.Args)-1])
	assert.Equal(t, filepath.Join("reports", "gemini-review.json"), spec.OutputPath)
}

func TestBuildMetacharactersStayInert(t *testing.T) {
	// Shell metacharacters in the prompt must land verbatim in exactly one
	// argv slot (or stdin) with no quoting or interpretation.
	prompt := `review $(rm -rf /) && echo "done"; | > file`

	spec, _, err := newTestBuilder(testConfig()).Build(domain.ProviderGemini, prompt, "")
	require.NoError(t, err)
	assert.Equal(t, prompt, spec.Args[len(spec.Args)-1])

	spec, _, err = newTestBuilder(testConfig()).Build(domain.ProviderClaude, prompt, "")
	require.NoError(t, err)
	assert.Equal(t, prompt, spec.Input)
	assert.NotContains(t, spec.Args, prompt)
}

func TestBuildDisabledProvider(t *testing.T) {
	cfg := testConfig()
	pc := cfg.Providers[string(domain.ProviderClaude)]
	pc.Enabled = false
	cfg.Providers[string(domain.ProviderClaude)] = pc

	spec, enabled, err := newTestBuilder(cfg).Build(domain.ProviderClaude, "prompt", "")

	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Nil(t, spec)
}

func TestBuildGeneric(t *testing.T) {
	t.Run("uses the configured command and args", func(t *testing.T) {
		cfg := testConfig()
		cfg.Providers[string(domain.ProviderGeneric)] = config.ProviderConfig{
			Enabled: true,
			Command: "/usr/local/bin/reviewer",
			Args:    []string{"--format", "json"},
		}

		spec, enabled, err := newTestBuilder(cfg).Build(domain.ProviderGeneric, "prompt", "")

		require.NoError(t, err)
		require.True(t, enabled)
		assert.Equal(t, "/usr/local/bin/reviewer", spec.Program)
		assert.Equal(t, []string{"--format", "json"}, spec.Args)
		assert.Equal(t, "prompt", spec.Input)
	})

	t.Run("disabled by default", func(t *testing.T) {
		_, enabled, err := newTestBuilder(testConfig()).Build(domain.ProviderGeneric, "prompt", "")

		require.NoError(t, err)
		assert.False(t, enabled)
	})
}

func TestBuildExtraFlags(t *testing.T) {
	cfg := testConfig()
	pc := cfg.Providers[string(domain.ProviderClaude)]
	pc.ExtraFlags = []string{"--dangerously-skip-permissions"}
	cfg.Providers[string(domain.ProviderClaude)] = pc

	spec, _, err := newTestBuilder(cfg).Build(domain.ProviderClaude, "prompt", "")

	require.NoError(t, err)
	assert.Contains(t, spec.Args, "--dangerously-skip-permissions")
}

func TestBuildAbsoluteOutputDir(t *testing.T) {
	cfg := testConfig()
	cfg.OutputDir = "/var/reports"

	spec, _, err := newTestBuilder(cfg).Build(domain.ProviderClaude, "prompt", "/work")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/reports", "claude-review.json"), spec.OutputPath)
}
