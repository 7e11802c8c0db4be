package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySeverityEnums(t *testing.T) {
	for _, c := range []Category{
		CategorySecurity, CategoryCorrectness, CategoryPerformance, CategoryTesting,
		CategoryArchitecture, CategoryStyle, CategoryMaintainability, CategoryDocs,
	} {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, Category("misc").IsValid())

	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, Severity("urgent").IsValid())
}

func TestCanonicalReportJSONShape(t *testing.T) {
	report := CanonicalReport{
		Tool:        "claude",
		Model:       "sonnet",
		Timestamp:   "2026-08-01T12:00:00Z",
		Summary:     "fine",
		Assumptions: []string{},
		Findings:    []Finding{},
		Tests:       Tests{Summary: "not executed"},
		Metrics:     map[string]any{},
		Evidence:    []string{},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Required fields are always serialized, even when empty.
	for _, key := range []string{
		"tool", "model", "timestamp", "summary", "assumptions",
		"findings", "tests", "metrics", "evidence", "exit_criteria",
	} {
		assert.Contains(t, decoded, key)
	}

	// Optional fields stay out of the document when unset.
	assert.NotContains(t, decoded, "pr")
	assert.NotContains(t, decoded, "error")
}
