package normalize

import (
	"strings"

	"github.com/mrz1836/quorum/internal/constants"
	"github.com/mrz1836/quorum/internal/domain"
)

// Fallback synthesizes a complete, schema-valid report from a diagnostic
// message and whatever identity is known. Every failure anywhere in the
// invocation chain (spawn, timeout, non-zero exit, extraction failure) ends
// up here, so the downstream aggregator always receives a well-formed
// document. This function never fails.
//
// The report is built fresh from known inputs rather than by patching a
// partially-formed value, so schema completeness holds by construction.
func (n *Normalizer) Fallback(diag string) *domain.CanonicalReport {
	diag = strings.TrimSpace(diag)
	if diag == "" {
		diag = "provider invocation failed with no diagnostic output"
	}

	tool := n.id.Tool
	if tool == "" {
		tool = "unknown"
	}
	model := n.id.Model
	if model == "" {
		model = "unknown"
	}

	return &domain.CanonicalReport{
		Tool:        tool,
		Model:       model,
		Timestamp:   n.clk.Now().UTC().Format(timestampLayout),
		PR:          n.id.PR,
		Summary:     padSummary("review did not complete; see error field"),
		Assumptions: []string{},
		Findings:    []domain.Finding{},
		Tests:       domain.Tests{Executed: false, Summary: "not executed"},
		Metrics:     map[string]any{},
		Evidence:    []string{},
		ExitCriteria: domain.ExitCriteria{
			ReadyForPR: false,
			Reasons:    []string{"provider invocation or output normalization failed"},
		},
		Error: truncate(diag, constants.MaxErrorLen),
	}
}
