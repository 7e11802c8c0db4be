// Package runner executes one provider command as an isolated subprocess and
// guarantees exactly one canonical report per invocation.
//
// The runner never interprets provider output itself: raw text goes to the
// normalizer, and every failure mode (spawn, timeout, non-zero exit, output
// overflow, extraction failure) is converted into a schema-valid fallback
// report. The output contract is never violated.
//
// IMPORTANT: This package may import internal/normalize, internal/domain,
// internal/constants, internal/clock, internal/ctxutil, internal/logging,
// and internal/errors. It MUST NOT import internal/cli or internal/provider.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/quorum/internal/clock"
	"github.com/mrz1836/quorum/internal/constants"
	"github.com/mrz1836/quorum/internal/ctxutil"
	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
	"github.com/mrz1836/quorum/internal/logging"
	"github.com/mrz1836/quorum/internal/normalize"
)

// phase tracks the runner's position in its lifecycle. No phase permits
// re-entry; one ProcessRunner instance handles exactly one invocation.
type phase int

const (
	phaseIdle phase = iota
	phaseSpawned
	phaseRunning
	phaseNormalizing
	phaseWritten
)

// ProcessRunner supervises a single provider subprocess for its entire
// lifetime: it feeds input, enforces the timeout with graceful-then-forceful
// termination, captures bounded output, and hands raw output to the
// normalizer. Any number of runners may run concurrently; they share no
// mutable state.
type ProcessRunner struct {
	norm   *normalize.Normalizer
	logger zerolog.Logger
	clk    clock.Clock
	grace  time.Duration
	runID  string

	mu    sync.Mutex
	phase phase
}

// Option is a functional option for configuring a ProcessRunner.
type Option func(*ProcessRunner)

// WithLogger sets the runner's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *ProcessRunner) { r.logger = logger }
}

// WithClock sets the clock used for report timestamps and durations.
func WithClock(clk clock.Clock) Option {
	return func(r *ProcessRunner) { r.clk = clk }
}

// WithTerminationGrace overrides the delay between the graceful termination
// signal and the forceful kill.
func WithTerminationGrace(grace time.Duration) Option {
	return func(r *ProcessRunner) { r.grace = grace }
}

// New creates a ProcessRunner that normalizes output with norm.
func New(norm *normalize.Normalizer, opts ...Option) *ProcessRunner {
	r := &ProcessRunner{
		norm:   norm,
		logger: zerolog.Nop(),
		clk:    clock.RealClock{},
		grace:  constants.TerminationGrace,
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the unique identifier for this invocation, used to correlate
// log lines across the pipeline.
func (r *ProcessRunner) RunID() string {
	return r.runID
}

// Run executes the CommandSpec and writes exactly one canonical report to
// spec.OutputPath. Provider failures of every kind are converted into a
// fallback report rather than an error; Run returns an error only when the
// runner is reused, the process cannot be spawned, the context is canceled,
// or the report file cannot be written.
func (r *ProcessRunner) Run(ctx context.Context, spec *domain.CommandSpec) (*domain.ExecutionResult, error) {
	if err := r.enter(phaseSpawned); err != nil {
		return nil, err
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	log := r.logger.With().
		Str("run_id", r.runID).
		Str("provider", spec.Provider.String()).
		Logger()

	cmd, stdout, stderr, err := r.spawn(spec)
	if err != nil {
		log.Error().Err(err).Str("program", spec.Program).Msg("provider spawn failed")
		writeErr := r.writeReport(spec.OutputPath, r.norm.Fallback(err.Error()))
		if writeErr != nil {
			return nil, writeErr
		}
		return nil, err
	}

	r.setPhase(phaseRunning)
	log.Debug().Str("program", cmd.Path).Strs("args", spec.Args).Msg("provider started")

	result, interrupted := r.supervise(ctx, cmd, spec, stdout, stderr)

	// Raw streams are diagnostics only; the report file is the artifact.
	log.Debug().
		Int("stdout_bytes", len(result.Stdout)).
		Str("stderr_tail", stderrTail(result.Stderr)).
		Msg("provider output captured")

	r.setPhase(phaseNormalizing)
	report := r.resolveReport(result, spec, interrupted, stdout, stderr, log)

	if err := r.writeReport(spec.OutputPath, report); err != nil {
		return result, err
	}
	r.setPhase(phaseWritten)

	log.Info().
		Bool("timed_out", result.TimedOut).
		Bool("fallback", report.Error != "").
		Int("findings", len(report.Findings)).
		Dur("duration", result.Duration).
		Msg("provider run complete")

	if interrupted {
		return result, ctx.Err()
	}
	return result, nil
}

// spawn starts the subprocess with bounded capture and delivers the input
// payload. The program is spawned directly with the argument vector, never
// via a command interpreter, so shell metacharacters in arguments are inert.
func (r *ProcessRunner) spawn(spec *domain.CommandSpec) (*exec.Cmd, *boundedBuffer, *boundedBuffer, error) {
	//nolint:gosec // Direct argv spawn of a configured provider command is the point
	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Dir = spec.WorkingDir
	if len(spec.Env) > 0 {
		env := os.Environ()
		for k, v := range spec.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	stdout := newBoundedBuffer(constants.MaxCaptureBytes)
	stderr := newBoundedBuffer(constants.MaxCaptureBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, quorumerrors.Wrap(err, "failed to open stdin pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", quorumerrors.ErrSpawnFailed, err.Error())
	}

	// Deliver the payload and close the stream. The stream is closed even
	// when there is no payload: leaving it open risks the child blocking
	// indefinitely waiting for end-of-input.
	go func() {
		if spec.Input != "" {
			_, _ = io.WriteString(stdin, spec.Input)
		}
		_ = stdin.Close()
	}()

	return cmd, stdout, stderr, nil
}

// supervise waits for the process under a single timeout timer, escalating
// from SIGTERM to SIGKILL after the grace window. The timer is independent
// of I/O progress: a slow-but-steady provider completes normally while a
// wedged one is killed at timeout + grace.
func (r *ProcessRunner) supervise(ctx context.Context, cmd *exec.Cmd, spec *domain.CommandSpec, stdout, stderr *boundedBuffer) (*domain.ExecutionResult, bool) {
	start := r.clk.Now()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(effectiveTimeout(spec))
	defer timer.Stop()

	var timedOut, interrupted bool
	select {
	case <-done:
	case <-timer.C:
		timedOut = true
		r.terminate(cmd, done)
	case <-ctx.Done():
		interrupted = true
		r.terminate(cmd, done)
	}

	result := &domain.ExecutionResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		TimedOut: timedOut,
		Duration: r.clk.Now().Sub(start),
	}
	// A process killed by the timer has no exit code; any other completion
	// does. Exactly one of the two holds in a completed result.
	if !timedOut && cmd.ProcessState != nil {
		code := cmd.ProcessState.ExitCode()
		result.ExitCode = &code
	}
	return result, interrupted
}

// terminate sends the graceful termination signal and, if the process has
// not exited within the grace window, the forceful kill. It returns once
// the process has been reaped.
func (r *ProcessRunner) terminate(cmd *exec.Cmd, done <-chan error) {
	_ = cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-done:
	case <-time.After(r.grace):
		_ = cmd.Process.Kill()
		<-done
	}
}

// resolveReport turns the execution outcome into the single canonical report
// for this invocation, consulting the normalizer when there is usable output
// and falling back otherwise.
func (r *ProcessRunner) resolveReport(result *domain.ExecutionResult, spec *domain.CommandSpec, interrupted bool, stdout, stderr *boundedBuffer, log zerolog.Logger) *domain.CanonicalReport {
	raw := result.Stdout
	if spec.RawOutputPath != "" {
		if data, err := os.ReadFile(spec.RawOutputPath); err == nil {
			raw = string(data)
			_ = os.Remove(spec.RawOutputPath)
		}
	}
	rawEmpty := strings.TrimSpace(raw) == ""

	switch {
	case interrupted:
		return r.norm.Fallback("run interrupted before the provider completed")

	case stdout.Overflowed() || stderr.Overflowed():
		return r.norm.Fallback(fmt.Sprintf(
			"%s: captured stream exceeded %d bytes", quorumerrors.ErrOutputOverflow, constants.MaxCaptureBytes))

	case result.TimedOut && rawEmpty:
		return r.norm.Fallback(fmt.Sprintf(
			"provider timed out after %s with no output: %s", effectiveTimeout(spec), stderrTail(result.Stderr)))

	case result.ExitCode != nil && *result.ExitCode != 0 && rawEmpty:
		// Non-zero exit with nothing on stdout: skip normalization, the
		// stderr text is the only diagnostic there is.
		return r.norm.Fallback(fmt.Sprintf(
			"provider exited with code %d: %s", *result.ExitCode, stderrTail(result.Stderr)))
	}

	report, err := r.norm.Normalize(raw)
	if err != nil {
		// Malformed provider output never propagates as an error.
		log.Warn().Err(err).Msg("output normalization failed, generating fallback report")
		return r.norm.Fallback(fmt.Sprintf(
			"output normalization failed: %s (stderr: %s)", err.Error(), stderrTail(result.Stderr)))
	}
	return report
}

// writeReport persists the canonical report, creating parent directories as
// needed. The report file is the system's output contract; a write failure
// is the one error the runner cannot convert into a report.
func (r *ProcessRunner) writeReport(path string, report *domain.CanonicalReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return quorumerrors.Wrapf(err, "failed to create report directory for %s", path)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return quorumerrors.Wrap(err, "failed to encode canonical report")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Reports are not secrets
		return quorumerrors.Wrapf(err, "failed to write report to %s", path)
	}
	return nil
}

// enter moves the runner out of idle exactly once.
func (r *ProcessRunner) enter(p phase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != phaseIdle {
		return quorumerrors.ErrRunnerReused
	}
	r.phase = p
	return nil
}

func (r *ProcessRunner) setPhase(p phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
}

// effectiveTimeout resolves the timeout to enforce for a spec.
func effectiveTimeout(spec *domain.CommandSpec) time.Duration {
	if spec.Timeout > 0 {
		return spec.Timeout
	}
	return constants.DefaultProviderTimeout
}

// stderrTail bounds a stderr diagnostic to its most informative part and
// redacts anything secret-shaped. The result ends up in report files.
func stderrTail(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return "(no stderr)"
	}
	const tail = 500
	if len(stderr) > tail {
		stderr = "..." + stderr[len(stderr)-tail:]
	}
	return logging.FilterSensitiveValue(stderr)
}
