package provider

import (
	"fmt"
	"strings"

	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

// WrapExecutionError wraps an execution error with provider-specific context.
// It recognizes missing-CLI and API-key failures and produces a diagnostic a
// user can act on; everything else keeps the stderr text.
func WrapExecutionError(info Info, err error, stderr []byte) error {
	stderrStr := strings.TrimSpace(string(stderr))

	if strings.Contains(stderrStr, "command not found") ||
		strings.Contains(err.Error(), "executable file not found") {
		return fmt.Errorf("%w: %s CLI not found - %s", quorumerrors.ErrProviderInvocation, info.Command, info.InstallHint)
	}

	if info.EnvVar != "" &&
		(strings.Contains(strings.ToLower(stderrStr), "api key") ||
			strings.Contains(strings.ToLower(stderrStr), "authentication") ||
			strings.Contains(stderrStr, info.EnvVar)) {
		return fmt.Errorf("%w: API key error: %s", quorumerrors.ErrProviderInvocation, stderrStr)
	}

	if stderrStr != "" {
		return fmt.Errorf("%w: %s", quorumerrors.ErrProviderInvocation, stderrStr)
	}
	return fmt.Errorf("%w: %s", quorumerrors.ErrProviderInvocation, err.Error())
}
