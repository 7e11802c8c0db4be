package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mrz1836/quorum/internal/constants"
	"github.com/mrz1836/quorum/internal/domain"
)

// canonicalize builds a brand-new, fully-populated CanonicalReport from the
// extracted structure. Every required field is filled with a deterministic
// default when missing, so schema completeness holds by construction rather
// than by checklist. The input map is never mutated.
func canonicalize(m map[string]any, id Identity, now time.Time) *domain.CanonicalReport {
	report := &domain.CanonicalReport{
		Tool:         identityField(m, "tool", id.Tool),
		Model:        identityField(m, "model", id.Model),
		Timestamp:    timestampField(m, now),
		PR:           prField(m, id.PR),
		Summary:      truncate(stringField(m, "summary"), constants.MaxSummaryLen),
		Assumptions:  toStringList(m["assumptions"]),
		Findings:     toFindings(m["findings"]),
		Tests:        coerceTests(m["tests"]),
		Metrics:      toMetrics(m["metrics"]),
		Evidence:     flattenEvidence(m["evidence"]),
		ExitCriteria: coerceExitCriteria(m["exit_criteria"]),
		Error:        stringField(m, "error"),
	}
	return report
}

// identityField reads a string field, falling back to the injected identity
// hint and then to "unknown".
func identityField(m map[string]any, key, hint string) string {
	if v := stringField(m, key); v != "" {
		return v
	}
	if hint != "" {
		return hint
	}
	return "unknown"
}

// timestampLayout is the ISO 8601 layout every report timestamp uses.
const timestampLayout = time.RFC3339

func timestampField(m map[string]any, now time.Time) string {
	if v := stringField(m, "timestamp"); v != "" {
		return v
	}
	return now.UTC().Format(timestampLayout)
}

func prField(m map[string]any, hint *domain.PRInfo) *domain.PRInfo {
	pr, ok := m["pr"].(map[string]any)
	if !ok {
		return hint
	}
	out := &domain.PRInfo{
		Branch: stringField(pr, "branch"),
		Commit: stringField(pr, "commit"),
		Title:  stringField(pr, "title"),
	}
	if n, ok := pr["number"].(float64); ok {
		out.Number = int(n)
	}
	return out
}

// toFindings coerces the findings list, mapping free-text category and
// severity values onto the closed enumerations.
func toFindings(v any) []domain.Finding {
	arr, ok := v.([]any)
	if !ok {
		return []domain.Finding{}
	}
	out := make([]domain.Finding, 0, len(arr))
	for _, e := range arr {
		f, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.Finding{
			Category:   MapCategory(stringField(f, "category")),
			Severity:   MapSeverity(stringField(f, "severity")),
			File:       stringField(f, "file", "path"),
			Lines:      linesField(f),
			Message:    stringField(f, "message", "description"),
			Suggestion: stringField(f, "suggestion", "fix"),
			Evidence:   flattenEvidence(f["evidence"]),
			MustFix:    boolField(f, "must_fix", "blocking"),
		})
	}
	return out
}

// MapCategory maps a free-text category onto the closed enumeration via
// case-insensitive substring rules. Unmatched categories fall back to style
// deterministically.
func MapCategory(raw string) domain.Category {
	c := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(c, "sec"):
		return domain.CategorySecurity
	case strings.Contains(c, "perf"):
		return domain.CategoryPerformance
	case strings.Contains(c, "correct"), strings.Contains(c, "bug"), strings.Contains(c, "logic"):
		return domain.CategoryCorrectness
	case strings.Contains(c, "test"):
		return domain.CategoryTesting
	case strings.Contains(c, "arch"), strings.Contains(c, "design"):
		return domain.CategoryArchitecture
	case strings.Contains(c, "maint"):
		return domain.CategoryMaintainability
	case strings.Contains(c, "doc"):
		return domain.CategoryDocs
	default:
		return domain.CategoryStyle
	}
}

// MapSeverity maps a free-text severity onto the closed enumeration via
// case-insensitive substring rules. Unmatched severities fall back to low
// deterministically.
func MapSeverity(raw string) domain.Severity {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "crit"), strings.Contains(s, "blocker"):
		return domain.SeverityCritical
	case strings.Contains(s, "high"), strings.Contains(s, "major"):
		return domain.SeverityHigh
	case strings.Contains(s, "med"), strings.Contains(s, "mod"):
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// flattenEvidence coerces evidence of any shape into a list of strings.
// Object-shaped entries become "file:lines"; anything else is stringified.
// Object evidence is never passed through.
func flattenEvidence(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		switch t := e.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			file := stringField(t, "file", "path")
			lines := linesField(t)
			switch {
			case file != "" && lines != "":
				out = append(out, file+":"+lines)
			case file != "":
				out = append(out, file)
			default:
				raw, _ := json.Marshal(t)
				out = append(out, string(raw))
			}
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}

// coerceTests fills the tests block, defaulting to a not-executed block when
// the provider reported nothing.
func coerceTests(v any) domain.Tests {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Tests{Executed: false, Summary: "not executed"}
	}
	t := domain.Tests{
		Executed: boolField(m, "executed", "ran"),
		Summary:  stringField(m, "summary", "results"),
		Coverage: coerceCoverage(m["coverage"]),
	}
	if t.Summary == "" {
		t.Summary = "not executed"
	}
	return t
}

// coerceCoverage turns a coverage value of any shape (number, string, object,
// absent) into a number or nil.
func coerceCoverage(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	case map[string]any:
		for _, key := range []string{"percent", "percentage", "value", "lines"} {
			if c := coerceCoverage(t[key]); c != nil {
				return c
			}
		}
		return nil
	default:
		return nil
	}
}

func coerceExitCriteria(v any) domain.ExitCriteria {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.ExitCriteria{ReadyForPR: false, Reasons: []string{}}
	}
	return domain.ExitCriteria{
		ReadyForPR: boolField(m, "ready_for_pr", "ready"),
		Reasons:    toStringList(m["reasons"]),
	}
}

func toMetrics(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// toStringList coerces a list of any shape into strings. Map entries keep
// their text field when present, otherwise their compact JSON form.
func toStringList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		switch t := e.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if s := stringField(t, "text", "assumption", "reason"); s != "" {
				out = append(out, s)
				continue
			}
			raw, _ := json.Marshal(t)
			out = append(out, string(raw))
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}

// stringField returns the first non-empty string value among keys.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// boolField returns the first boolean value among keys, accepting "true"
// strings from providers that quote everything.
func boolField(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch t := m[k].(type) {
		case bool:
			return t
		case string:
			return strings.EqualFold(strings.TrimSpace(t), "true")
		}
	}
	return false
}

// linesField coerces a line range of any shape into "start-end" or a single
// line number string.
func linesField(m map[string]any) string {
	for _, k := range []string{"lines", "line", "line_range"} {
		switch t := m[k].(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return strconv.Itoa(int(t))
		case map[string]any:
			start, sok := t["start"].(float64)
			end, eok := t["end"].(float64)
			switch {
			case sok && eok:
				return fmt.Sprintf("%d-%d", int(start), int(end))
			case sok:
				return strconv.Itoa(int(start))
			}
		case []any:
			if len(t) == 2 {
				s, sok := t[0].(float64)
				e, eok := t[1].(float64)
				if sok && eok {
					return fmt.Sprintf("%d-%d", int(s), int(e))
				}
			}
		}
	}
	return ""
}

// truncate bounds s to max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// padSummary pads a synthesized prose summary up to the schema's minimum
// length so downstream length checks hold.
func padSummary(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= constants.MinSummaryLen {
		return truncate(s, constants.MaxSummaryLen)
	}
	return s + strings.Repeat(" ", constants.MinSummaryLen-len(s))
}
