package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/quorum/internal/clock"
	"github.com/mrz1836/quorum/internal/config"
	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
	"github.com/mrz1836/quorum/internal/normalize"
	"github.com/mrz1836/quorum/internal/provider"
	"github.com/mrz1836/quorum/internal/runner"
)

// runFlags holds the flag values for the run command.
type runFlags struct {
	promptFile string
	workDir    string
	outputDir  string
	providers  []string
	prNumber   int
	prBranch   string
	prCommit   string
	prTitle    string
}

// providerOutcome records one provider's result for the run summary.
type providerOutcome struct {
	provider domain.Provider
	report   string
	fallback bool
	err      error
}

// AddRunCommand registers the run command on the root command.
func AddRunCommand(root *cobra.Command) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Invoke the configured review providers and write canonical reports",
		Long: `Run builds one shell-free command per enabled provider, executes them
concurrently, and writes exactly one canonical report file per provider.

The prompt is read from --prompt-file, or from standard input when the flag
is not given. Provider failures of any kind still produce a schema-valid
report with the diagnostic in its error field.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProviders(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.promptFile, "prompt-file", "p", "", "file containing the assembled review prompt (default: stdin)")
	cmd.Flags().StringVarP(&flags.workDir, "workdir", "w", "", "directory the providers run in (default: current directory)")
	cmd.Flags().StringVarP(&flags.outputDir, "out", "o", "", "override the report output directory")
	cmd.Flags().StringSliceVar(&flags.providers, "provider", nil, "providers to run (default: all enabled)")
	cmd.Flags().IntVar(&flags.prNumber, "pr-number", 0, "pull request number stamped into reports")
	cmd.Flags().StringVar(&flags.prBranch, "pr-branch", "", "pull request branch stamped into reports")
	cmd.Flags().StringVar(&flags.prCommit, "pr-commit", "", "pull request head commit stamped into reports")
	cmd.Flags().StringVar(&flags.prTitle, "pr-title", "", "pull request title stamped into reports")

	root.AddCommand(cmd)
}

func runProviders(cmd *cobra.Command, flags *runFlags) error {
	logger := GetLogger().With().Str("batch_id", uuid.NewString()).Logger()

	// SIGINT/SIGTERM cancels the run; each runner escalates termination to
	// its child so no provider process outlives quorum.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(logger.WithContext(ctx))
	if err != nil {
		return err
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}

	prompt, err := readPrompt(cmd, flags.promptFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt", quorumerrors.ErrEmptyValue)
	}

	providers, err := selectProviders(flags.providers)
	if err != nil {
		return err
	}

	pr := prInfo(flags)
	builder := provider.NewSpecBuilder(cfg, logger)

	var (
		mu       sync.Mutex
		outcomes []providerOutcome
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range providers {
		spec, enabled, buildErr := builder.Build(p, prompt, flags.workDir)
		if buildErr != nil {
			return buildErr
		}
		if !enabled {
			continue
		}

		g.Go(func() error {
			id := normalize.Identity{Tool: p.String(), Model: cfg.Provider(p).Model, PR: pr}
			run := runner.New(normalize.New(id, clock.RealClock{}), runner.WithLogger(logger))

			result, runErr := run.Run(gctx, spec)
			outcome := providerOutcome{provider: p, report: spec.OutputPath, err: runErr}
			if runErr == nil && result != nil {
				outcome.fallback = result.TimedOut || (result.ExitCode != nil && *result.ExitCode != 0)
			}
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()

			// A spawn failure already produced a fallback report; the run
			// as a whole keeps going so the other providers still report.
			if stderrors.Is(runErr, quorumerrors.ErrSpawnFailed) {
				logger.Warn().Err(runErr).Str("provider", p.String()).Msg("provider could not be started")
				return nil
			}
			return runErr
		})
	}

	waitErr := g.Wait()
	summarize(logger, outcomes)
	return waitErr
}

// readPrompt reads the assembled prompt from the named file, or from
// standard input when no file is given.
func readPrompt(cmd *cobra.Command, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // User-supplied prompt path is the interface
		if err != nil {
			return "", quorumerrors.Wrapf(err, "failed to read prompt file %s", path)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", quorumerrors.Wrap(err, "failed to read prompt from stdin")
	}
	return string(data), nil
}

// selectProviders resolves the --provider flag into provider identifiers,
// defaulting to the full catalog (disabled ones are skipped at build time).
func selectProviders(names []string) ([]domain.Provider, error) {
	if len(names) == 0 {
		return domain.KnownProviders(), nil
	}
	out := make([]domain.Provider, 0, len(names))
	for _, name := range names {
		p := domain.Provider(strings.ToLower(strings.TrimSpace(name)))
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %q", quorumerrors.ErrUnknownProvider, name)
		}
		out = append(out, p)
	}
	return out, nil
}

func prInfo(flags *runFlags) *domain.PRInfo {
	if flags.prNumber == 0 && flags.prBranch == "" && flags.prCommit == "" && flags.prTitle == "" {
		return nil
	}
	return &domain.PRInfo{
		Number: flags.prNumber,
		Branch: flags.prBranch,
		Commit: flags.prCommit,
		Title:  flags.prTitle,
	}
}

// summarize logs one line per provider after the run.
func summarize(logger zerolog.Logger, outcomes []providerOutcome) {
	for _, o := range outcomes {
		level := zerolog.InfoLevel
		if o.err != nil || o.fallback {
			level = zerolog.WarnLevel
		}
		logger.WithLevel(level).
			Str("provider", o.provider.String()).
			Str("report", o.report).
			Bool("fallback", o.fallback || o.err != nil).
			Msg("provider outcome")
	}
}
