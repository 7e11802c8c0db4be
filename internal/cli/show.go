package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mrz1836/quorum/internal/domain"
	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

//nolint:gochecknoglobals // Intentional package-level constants for report styling
var (
	// severityColors maps each severity to an adaptive color for light/dark terminals.
	severityColors = map[domain.Severity]lipgloss.AdaptiveColor{
		domain.SeverityCritical: {Light: "#AF0000", Dark: "#FF5F5F"},
		domain.SeverityHigh:     {Light: "#D75F00", Dark: "#FFAF5F"},
		domain.SeverityMedium:   {Light: "#AF8700", Dark: "#FFD700"},
		domain.SeverityLow:      {Light: "#585858", Dark: "#6C6C6C"},
	}

	styleBold = lipgloss.NewStyle().Bold(true)
	styleDim  = lipgloss.NewStyle().Faint(true)

	glamourRenderer     *glamour.TermRenderer
	glamourRendererOnce sync.Once
)

// getGlamourRenderer returns a cached glamour renderer for markdown rendering.
// The renderer is initialized once and reused across all calls.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// AddShowCommand registers the show command on the root command.
func AddShowCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <report>",
		Short: "Render a canonical report for human reading",
		Long: `Show reads a canonical report file and renders it for the terminal:
identity and exit criteria up top, findings grouped with severity coloring,
and the summary rendered as markdown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
	root.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, path string) error {
	report, err := loadReport(path)
	if err != nil {
		return err
	}
	renderReport(cmd.OutOrStdout(), report)
	return nil
}

// loadReport reads and decodes a canonical report, rejecting files that do
// not carry the required identity fields.
func loadReport(path string) (*domain.CanonicalReport, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-supplied report path is the interface
	if err != nil {
		return nil, quorumerrors.Wrapf(err, "failed to read report %s", path)
	}

	var report domain.CanonicalReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", quorumerrors.ErrInvalidReport, path, err)
	}
	if report.Tool == "" || report.Model == "" || report.Timestamp == "" {
		return nil, fmt.Errorf("%w: %s: missing identity fields", quorumerrors.ErrInvalidReport, path)
	}
	return &report, nil
}

func renderReport(w io.Writer, report *domain.CanonicalReport) {
	fmt.Fprintln(w, styleBold.Render(fmt.Sprintf("%s (%s)", report.Tool, report.Model)))
	fmt.Fprintln(w, styleDim.Render(report.Timestamp))
	if report.PR != nil {
		fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("PR #%d %s @ %s", report.PR.Number, report.PR.Branch, report.PR.Commit)))
	}
	fmt.Fprintln(w)

	renderExitCriteria(w, report.ExitCriteria)
	fmt.Fprintln(w)

	renderMarkdown(w, report.Summary)

	if report.Error != "" {
		fmt.Fprintln(w, severityStyle(domain.SeverityCritical).Render("error: "+report.Error))
		fmt.Fprintln(w)
	}

	renderFindings(w, report.Findings)
	renderTests(w, report.Tests)
}

func renderExitCriteria(w io.Writer, ec domain.ExitCriteria) {
	if ec.ReadyForPR {
		fmt.Fprintln(w, severityStyle(domain.SeverityLow).Render("ready for PR"))
		return
	}
	fmt.Fprintln(w, severityStyle(domain.SeverityHigh).Render("not ready for PR"))
	for _, reason := range ec.Reasons {
		fmt.Fprintln(w, "  - "+reason)
	}
}

func renderFindings(w io.Writer, findings []domain.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, styleDim.Render("no findings"))
		return
	}
	fmt.Fprintln(w, styleBold.Render(fmt.Sprintf("findings (%d)", len(findings))))
	for _, f := range findings {
		label := severityStyle(f.Severity).Render(strings.ToUpper(string(f.Severity)))
		location := f.File
		if f.Lines != "" {
			location += ":" + f.Lines
		}
		marker := ""
		if f.MustFix {
			marker = severityStyle(domain.SeverityCritical).Render(" [must fix]")
		}
		fmt.Fprintf(w, "  %s %s %s%s\n", label, styleDim.Render("["+string(f.Category)+"]"), location, marker)
		fmt.Fprintf(w, "    %s\n", f.Message)
		if f.Suggestion != "" {
			fmt.Fprintf(w, "    %s\n", styleDim.Render("suggestion: "+f.Suggestion))
		}
		for _, ev := range f.Evidence {
			fmt.Fprintf(w, "    %s\n", styleDim.Render("evidence: "+ev))
		}
	}
	fmt.Fprintln(w)
}

func renderTests(w io.Writer, tests domain.Tests) {
	line := "tests: " + tests.Summary
	if tests.Coverage != nil {
		line += fmt.Sprintf(" (coverage %.1f%%)", *tests.Coverage)
	}
	if tests.Executed {
		fmt.Fprintln(w, line)
		return
	}
	fmt.Fprintln(w, styleDim.Render(line))
}

// renderMarkdown renders the summary through glamour, falling back to plain
// text when no renderer is available.
func renderMarkdown(w io.Writer, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if renderer := getGlamourRenderer(); renderer != nil {
		if rendered, err := renderer.Render(text); err == nil {
			fmt.Fprintln(w, strings.TrimRight(rendered, "\n"))
			fmt.Fprintln(w)
			return
		}
	}
	fmt.Fprintln(w, text)
	fmt.Fprintln(w)
}

func severityStyle(s domain.Severity) lipgloss.Style {
	color, ok := severityColors[s]
	if !ok {
		color = severityColors[domain.SeverityLow]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
