package domain

import "time"

// CommandSpec is a structured, shell-free description of one provider
// invocation. It is constructed fresh per invocation by the spec builder,
// consumed exactly once by a ProcessRunner, then discarded.
//
// Invariant: Args are never joined into a single string for shell
// interpretation. The program is spawned directly with the argument vector,
// so embedded shell metacharacters in any argument are inert.
type CommandSpec struct {
	// Provider identifies which review tool this spec invokes.
	Provider Provider `json:"provider"`

	// Program is the executable name or resolved path. If resolution failed
	// at build time this carries the best-effort name and resolution is
	// retried at execution time.
	Program string `json:"program"`

	// Args is the ordered argument vector (strings only, no concatenation).
	Args []string `json:"args"`

	// Input is the payload delivered on the subprocess's standard input.
	// Empty means no payload; the input stream is closed immediately either
	// way so the child never blocks waiting for end-of-input.
	Input string `json:"input,omitempty"`

	// Env holds environment variable overrides applied on top of the
	// parent environment.
	Env map[string]string `json:"env,omitempty"`

	// Timeout is the maximum duration for the invocation before the
	// graceful-then-forceful termination sequence starts.
	Timeout time.Duration `json:"timeout"`

	// OutputPath is where the canonical report JSON is written.
	OutputPath string `json:"output_path"`

	// RawOutputPath is an optional secondary file some providers write
	// results to instead of stdout. When set, the runner reads this file
	// after exit and deletes it.
	RawOutputPath string `json:"raw_output_path,omitempty"`

	// WorkingDir is the directory the provider process runs in.
	WorkingDir string `json:"working_dir,omitempty"`
}

// ExecutionResult captures the outcome of one provider subprocess.
//
// Invariant: exactly one of {ExitCode != nil, TimedOut == true} holds in any
// completed result.
type ExecutionResult struct {
	// ExitCode is the process exit code, or nil if the process was killed
	// before exiting on its own.
	ExitCode *int `json:"exit_code,omitempty"`

	// Stdout is the captured standard output text.
	Stdout string `json:"stdout"`

	// Stderr is the captured standard error text.
	Stderr string `json:"stderr"`

	// TimedOut reports whether the timeout timer expired and the process
	// was terminated.
	TimedOut bool `json:"timed_out"`

	// Duration is how long the invocation took.
	Duration time.Duration `json:"duration"`
}
