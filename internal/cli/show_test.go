package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

const showSampleReport = `{
  "tool": "claude",
  "model": "sonnet",
  "timestamp": "2026-08-01T12:00:00Z",
  "summary": "One blocking issue in the auth path.",
  "assumptions": [],
  "findings": [
    {
      "category": "security",
      "severity": "critical",
      "file": "auth.go",
      "lines": "40-52",
      "message": "token compared with ==",
      "suggestion": "use subtle.ConstantTimeCompare",
      "evidence": ["auth.go:45"],
      "must_fix": true
    }
  ],
  "tests": {"executed": true, "summary": "unit tests pass", "coverage": 81.5},
  "metrics": {},
  "evidence": [],
  "exit_criteria": {"ready_for_pr": false, "reasons": ["critical finding open"]}
}`

func newShowTestCmd() (*cobra.Command, *bytes.Buffer) {
	root := &cobra.Command{Use: "quorum", SilenceUsage: true, SilenceErrors: true}
	AddShowCommand(root)
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	return root, &stdout
}

func TestShowCommand(t *testing.T) {
	t.Run("renders a report", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "claude-review.json")
		require.NoError(t, os.WriteFile(path, []byte(showSampleReport), 0o600))

		root, stdout := newShowTestCmd()
		root.SetArgs([]string{"show", path})

		require.NoError(t, root.Execute())

		out := stdout.String()
		assert.Contains(t, out, "claude")
		assert.Contains(t, out, "not ready for PR")
		assert.Contains(t, out, "critical finding open")
		assert.Contains(t, out, "auth.go")
		assert.Contains(t, out, "token compared")
		assert.Contains(t, out, "coverage 81.5%")
	})

	t.Run("rejects a non-report file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"whatever": true}`), 0o600))

		root, _ := newShowTestCmd()
		root.SetArgs([]string{"show", path})

		assert.ErrorIs(t, root.Execute(), quorumerrors.ErrInvalidReport)
	})

	t.Run("missing file fails", func(t *testing.T) {
		root, _ := newShowTestCmd()
		root.SetArgs([]string{"show", filepath.Join(t.TempDir(), "absent.json")})

		assert.Error(t, root.Execute())
	})
}
