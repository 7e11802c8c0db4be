package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/quorum/internal/clock"
	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
	"github.com/mrz1836/quorum/internal/normalize"
)

// normalizeFlags holds the flag values for the normalize command.
type normalizeFlags struct {
	tool  string
	model string
	debug bool
}

// AddNormalizeCommand registers the normalize command on the root command.
func AddNormalizeCommand(root *cobra.Command) {
	flags := &normalizeFlags{}

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize raw provider output into a canonical report",
		Long: `Normalize reads raw provider output from the given file, or from standard
input when no file is given, extracts the embedded report through the tiered
extraction chain, and prints the canonical report as indented JSON on stdout.

Extraction failures exit non-zero with the tier diagnostics on stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.tool, "tool", "", "tool identity stamped into the report when the payload omits it")
	cmd.Flags().StringVar(&flags.model, "model", "", "model identity stamped into the report when the payload omits it")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "echo a prefix of the raw input to stderr on extraction failure")

	root.AddCommand(cmd)
}

func runNormalize(cmd *cobra.Command, args []string, flags *normalizeFlags) error {
	raw, err := readRawInput(cmd, args)
	if err != nil {
		return err
	}

	id := normalize.Identity{Tool: flags.tool, Model: flags.model}
	report, err := normalize.New(id, clock.RealClock{}).Normalize(raw)
	if err != nil {
		if flags.debug {
			fmt.Fprintf(cmd.ErrOrStderr(), "raw input (first %d bytes):\n%s\n", len(rawPrefix(raw)), rawPrefix(raw))
		}
		return err
	}

	return writeReportJSON(cmd.OutOrStdout(), report)
}

// readRawInput reads the provider output from the file argument or stdin.
// Empty input fails before any extraction runs.
func readRawInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0]) //nolint:gosec // User-supplied report path is the interface
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", quorumerrors.ErrInputUnreadable, args[0], err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", quorumerrors.ErrInputUnreadable, err)
		}
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", quorumerrors.ErrEmptyInput
	}
	return string(data), nil
}

func writeReportJSON(w io.Writer, report *domain.CanonicalReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return quorumerrors.Wrap(err, "failed to encode canonical report")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// rawPrefix caps the debug echo so huge stream outputs stay readable.
func rawPrefix(raw string) string {
	const limit = 2048
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit]
}
