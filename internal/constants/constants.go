// Package constants provides centralized constant values used throughout quorum.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by quorum for organizing data.
const (
	// QuorumHome is the hidden directory name where quorum stores all its data.
	// This directory is created in the user's home directory.
	QuorumHome = ".quorum"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LogFileName is the name of the rotating log file.
	LogFileName = "quorum.log"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// DefaultReportsDir is the default directory for canonical report files,
	// relative to the working directory.
	DefaultReportsDir = ".quorum/reports"
)

// Timeout configurations for provider execution.
const (
	// DefaultProviderTimeout is the default maximum duration for one provider
	// invocation, covering the full review of a change.
	DefaultProviderTimeout = 20 * time.Minute

	// TerminationGrace is the delay between the graceful termination signal
	// and the escalated forceful kill when a provider exceeds its timeout.
	TerminationGrace = 5 * time.Second
)

// Output capture limits.
const (
	// MaxCaptureBytes is the hard ceiling for each captured output stream.
	// Exceeding it fails the invocation outright rather than truncating.
	MaxCaptureBytes = 10 << 20 // 10 MiB
)

// Canonical report field bounds.
const (
	// MaxSummaryLen is the maximum length of a report summary; longer
	// summaries are truncated during canonicalization.
	MaxSummaryLen = 2000

	// MinSummaryLen is the minimum length a synthesized prose summary is
	// padded to, so downstream schema checks on summary length hold.
	MinSummaryLen = 40

	// MaxErrorLen is the maximum length of the diagnostic text carried in a
	// fallback report's error field.
	MaxErrorLen = 1000
)
