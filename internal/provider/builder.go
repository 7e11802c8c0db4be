package provider

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/quorum/internal/config"
	"github.com/mrz1836/quorum/internal/domain"
)

// SpecBuilder constructs CommandSpecs from resolved configuration and an
// assembled prompt. Construction is pure: the builder never executes
// anything and has no side effects.
type SpecBuilder struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewSpecBuilder creates a SpecBuilder over the given configuration.
func NewSpecBuilder(cfg *config.Config, logger zerolog.Logger) *SpecBuilder {
	return &SpecBuilder{cfg: cfg, logger: logger}
}

// Build returns the CommandSpec for one provider invocation, or ok=false
// (with no error) when the provider is disabled in configuration.
func (b *SpecBuilder) Build(p domain.Provider, prompt, workDir string) (*domain.CommandSpec, bool, error) {
	info, err := Lookup(p)
	if err != nil {
		return nil, false, err
	}

	pc := b.cfg.Provider(p)
	if !pc.Enabled {
		b.logger.Debug().Str("provider", p.String()).Msg("provider disabled, skipping")
		return nil, false, nil
	}

	outputDir := b.cfg.OutputDir
	if !filepath.IsAbs(outputDir) && workDir != "" {
		outputDir = filepath.Join(workDir, outputDir)
	}

	spec := &domain.CommandSpec{
		Provider:   p,
		Timeout:    pc.Timeout,
		Env:        pc.Env,
		WorkingDir: workDir,
		OutputPath: filepath.Join(outputDir, fmt.Sprintf("%s-review.json", p)),
	}
	if info.WritesRawFile {
		spec.RawOutputPath = filepath.Join(outputDir, fmt.Sprintf("%s-raw.txt", p))
	}

	program, args := b.buildCommand(info, pc, prompt, spec.RawOutputPath)
	spec.Program = ResolveExecutable(program, info.FallbackPaths)
	spec.Args = args

	// Prompt delivery is a fixed per-provider policy.
	if info.PromptViaStdin {
		spec.Input = prompt
	}

	return spec, true, nil
}

// buildCommand assembles the program and argument vector for a provider.
// Arguments are kept as a vector end to end; they are never joined into a
// single string for shell interpretation.
func (b *SpecBuilder) buildCommand(info Info, pc config.ProviderConfig, prompt, rawPath string) (string, []string) {
	switch info.Provider {
	case domain.ProviderClaude:
		args := []string{"-p", "--output-format", "stream-json", "--verbose"}
		if pc.Model != "" {
			args = append(args, "--model", pc.Model)
		}
		if pc.PermissionMode != "" {
			args = append(args, "--permission-mode", pc.PermissionMode)
		}
		args = append(args, pc.ExtraFlags...)
		return info.Command, args

	case domain.ProviderCodex:
		args := []string{"exec", "--json"}
		if pc.Model != "" {
			args = append(args, "--model", pc.Model)
		}
		if pc.Sandbox != "" {
			args = append(args, "--sandbox", pc.Sandbox)
		}
		if pc.ReasoningEffort != "" {
			args = append(args, "-c", "model_reasoning_effort="+pc.ReasoningEffort)
		}
		if rawPath != "" {
			args = append(args, "--output-last-message", rawPath)
		}
		args = append(args, pc.ExtraFlags...)
		// "-" makes codex read the prompt from stdin.
		args = append(args, "-")
		return info.Command, args

	case domain.ProviderGemini:
		args := []string{"--output-format", "json"}
		if pc.Model != "" {
			args = append(args, "--model", pc.Model)
		}
		args = append(args, pc.ExtraFlags...)
		// Gemini takes the prompt as a literal trailing argument.
		args = append(args, "--prompt", prompt)
		return info.Command, args

	default: // domain.ProviderGeneric
		args := append([]string{}, pc.Args...)
		args = append(args, pc.ExtraFlags...)
		return pc.Command, args
	}
}
