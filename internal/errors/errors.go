// Package errors provides centralized error handling for quorum.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyInput indicates that the normalizer filter received empty input.
	ErrEmptyInput = errors.New("input is empty")

	// ErrInputUnreadable indicates that the raw input source could not be read.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrProviderInvocation indicates that a provider CLI failed to execute
	// or returned a non-zero exit code.
	ErrProviderInvocation = errors.New("provider invocation failed")

	// ErrUnknownProvider indicates that a provider identifier is not in the catalog.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrSpawnFailed indicates that the provider process could not be started.
	ErrSpawnFailed = errors.New("process spawn failed")

	// ErrOutputOverflow indicates that a captured output stream exceeded the
	// hard ceiling. Overflow is a failure, never a silent truncation: a
	// truncated JSON document must not reach the normalizer as if complete.
	ErrOutputOverflow = errors.New("output buffer limit exceeded")

	// ErrRunnerReused indicates that a ProcessRunner was invoked more than once.
	// One runner instance handles exactly one invocation.
	ErrRunnerReused = errors.New("process runner already used")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidProvider indicates an invalid provider configuration value.
	ErrConfigInvalidProvider = errors.New("invalid provider configuration")

	// ErrConfigInvalidTimeout indicates a non-positive timeout configuration value.
	ErrConfigInvalidTimeout = errors.New("invalid timeout configuration")

	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidReport indicates that a report file does not contain a
	// canonical report document.
	ErrInvalidReport = errors.New("invalid report document")
)
