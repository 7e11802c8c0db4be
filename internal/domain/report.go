package domain

// Category classifies what aspect of the code a finding concerns.
// This is a closed enumeration; free-text categories from providers are
// mapped onto it during normalization.
type Category string

// Category constants define the closed finding category enumeration.
const (
	CategorySecurity        Category = "security"
	CategoryCorrectness     Category = "correctness"
	CategoryPerformance     Category = "performance"
	CategoryTesting         Category = "testing"
	CategoryArchitecture    Category = "architecture"
	CategoryStyle           Category = "style"
	CategoryMaintainability Category = "maintainability"
	CategoryDocs            Category = "docs"
)

// IsValid checks if the category is a recognized value.
func (c Category) IsValid() bool {
	switch c {
	case CategorySecurity, CategoryCorrectness, CategoryPerformance,
		CategoryTesting, CategoryArchitecture, CategoryStyle,
		CategoryMaintainability, CategoryDocs:
		return true
	}
	return false
}

// Severity grades how serious a finding is.
// This is a closed enumeration; free-text severities from providers are
// mapped onto it during normalization.
type Severity string

// Severity constants define the closed finding severity enumeration.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// IsValid checks if the severity is a recognized value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Finding is one reviewable issue reported by a provider.
type Finding struct {
	// Category is the closed-enum classification of the finding.
	Category Category `json:"category"`

	// Severity is the closed-enum grade of the finding.
	Severity Severity `json:"severity"`

	// File is the path the finding points at.
	File string `json:"file"`

	// Lines is the line range, formatted "start-end" or a single line number.
	Lines string `json:"lines"`

	// Message describes the issue.
	Message string `json:"message"`

	// Suggestion describes the proposed fix, if any.
	Suggestion string `json:"suggestion"`

	// Evidence lists supporting references. Entries are always strings
	// ("path:lines" or a raw fallback); object-shaped evidence from a
	// provider is flattened at normalization time, never passed through.
	Evidence []string `json:"evidence"`

	// MustFix marks findings the provider considers blocking.
	MustFix bool `json:"must_fix"`
}

// Tests describes what testing the provider performed, if any.
type Tests struct {
	// Executed reports whether the provider ran any tests.
	Executed bool `json:"executed"`

	// Summary describes the test outcome in prose.
	Summary string `json:"summary"`

	// Coverage is the observed coverage percentage, or nil when unknown.
	// Providers report coverage in many shapes; normalization coerces
	// them all to a number or null.
	Coverage *float64 `json:"coverage"`
}

// ExitCriteria is the provider's verdict on whether the change is ready.
type ExitCriteria struct {
	// ReadyForPR reports whether the provider considers the change ready.
	ReadyForPR bool `json:"ready_for_pr"`

	// Reasons lists the grounds for the verdict.
	Reasons []string `json:"reasons"`
}

// PRInfo carries optional pull-request metadata attached to a report.
type PRInfo struct {
	Number int    `json:"number,omitempty"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
	Title  string `json:"title,omitempty"`
}

// CanonicalReport is the single normalized schema all provider outputs are
// coerced into. Every top-level field is always present after normalization;
// the report is constructed once and never mutated afterward.
//
// A downstream aggregator consuming N provider invocations always receives
// exactly N documents of this shape; failure is communicated only through
// the Error field and ExitCriteria.ReadyForPR=false, never through a missing
// or malformed file.
type CanonicalReport struct {
	// Tool identifies the provider that produced the review.
	Tool string `json:"tool"`

	// Model identifies the model the provider used.
	Model string `json:"model"`

	// Timestamp is the ISO 8601 time the report was produced.
	Timestamp string `json:"timestamp"`

	// PR carries optional pull-request metadata.
	PR *PRInfo `json:"pr,omitempty"`

	// Summary is the bounded-length prose summary of the review.
	Summary string `json:"summary"`

	// Assumptions lists assumptions the provider made about the change.
	Assumptions []string `json:"assumptions"`

	// Findings is the ordered list of reported issues.
	Findings []Finding `json:"findings"`

	// Tests describes testing performed by the provider.
	Tests Tests `json:"tests"`

	// Metrics is a free-form mapping of provider metrics.
	Metrics map[string]any `json:"metrics"`

	// Evidence lists report-level supporting references as strings.
	Evidence []string `json:"evidence"`

	// ExitCriteria is the provider's readiness verdict.
	ExitCriteria ExitCriteria `json:"exit_criteria"`

	// Error carries the capped diagnostic text when the invocation or
	// normalization failed and this report was synthesized as a fallback.
	Error string `json:"error,omitempty"`
}
