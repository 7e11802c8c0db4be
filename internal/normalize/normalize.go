// Package normalize coerces raw review-tool output into the canonical report
// schema.
//
// Provider CLIs wrap their results in at least five distinct conventions:
// clean JSON, vendor envelopes, newline-delimited event streams, legacy
// verbose banners, and markdown fences, sometimes with bare JSON embedded in
// prose. Extraction tries a layered fallback protocol and either returns a
// fully-populated CanonicalReport or an explicit typed failure. It never
// emits a partially-valid report.
//
// IMPORTANT: This package may import internal/constants, internal/clock, and
// internal/domain. It MUST NOT import internal/runner or internal/cli.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/mrz1836/quorum/internal/clock"
	"github.com/mrz1836/quorum/internal/domain"
)

// Identity carries the default identity fields stamped into a report when
// the provider output omits them. It is threaded explicitly through the
// call chain rather than read from the ambient environment, keeping the
// normalizer a pure, independently testable function.
type Identity struct {
	// Tool is the provider identifier (e.g., "claude").
	Tool string

	// Model is the model identifier the provider was asked to use.
	Model string

	// PR is optional pull-request metadata for the change under review.
	PR *domain.PRInfo
}

// Normalizer is the multi-tier extraction and canonicalization engine.
// It is a pure function of its inputs; the same raw text always yields a
// field-equal report (modulo the injected clock).
type Normalizer struct {
	id  Identity
	clk clock.Clock
}

// New creates a Normalizer with the given identity defaults.
// A nil clock falls back to the system clock.
func New(id Identity, clk clock.Clock) *Normalizer {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Normalizer{id: id, clk: clk}
}

// envelopeKeys are the vendor wrapper fields that may hold the real payload,
// tried in order.
var envelopeKeys = []string{"result", "output", "content", "response", "message", "text"} //nolint:gochecknoglobals // Constant-like lookup order

// Normalize extracts a canonical report from raw provider output.
//
// Tiers are tried in order; the first that yields a parseable structure wins:
//
//	0: direct parse of the whole input, including vendor envelopes
//	1: newline-delimited event stream, scanned from the last event backward
//	2: legacy verbose wrapper stripping (banner, timestamp marker, footer)
//	3: markdown fence (json-labeled first, then any fence)
//	4: string/escape-aware balanced-delimiter scan
//
// On failure it returns a typed *ExtractionError naming the tier attempted,
// or a *ProviderError when the provider's envelope carried an explicit error
// flag. Callers must not fabricate structure themselves.
func (n *Normalizer) Normalize(raw string) (*domain.CanonicalReport, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ExtractionError{Tier: TierDirect, Reason: "empty input"}
	}

	// Tier 0: the whole input is one JSON document.
	if report, handled, err := n.direct(trimmed); handled {
		return report, err
	}

	// Tier 1: newline-delimited event stream.
	if report, ok := n.eventStream(trimmed); ok {
		return report, nil
	}

	// Tier 2: legacy verbose wrapper.
	cleaned := stripLegacyWrapper(trimmed)

	// Tier 3: markdown fence, applied to the cleaned text.
	if fenced, ok := extractFence(cleaned); ok {
		cleaned = fenced
	}

	if cleaned != trimmed {
		if m, ok := parseObject(cleaned); ok {
			return n.finish(m, TierFence)
		}
	}

	// Tier 4: balanced-delimiter scan.
	fragment, err := ExtractBalanced(cleaned)
	if err != nil {
		return nil, err
	}
	m, ok := parseObject(fragment)
	if !ok {
		return nil, &ExtractionError{Tier: TierScan, Reason: "balanced fragment is not a valid JSON object"}
	}
	return n.finish(m, TierScan)
}

// direct attempts Tier 0. The handled return is false when the input is not
// a single JSON document, signalling the caller to try the next tier.
func (n *Normalizer) direct(raw string) (*domain.CanonicalReport, bool, error) {
	m, ok := parseObject(raw)
	if !ok {
		return nil, false, nil
	}

	// Already carries the report's signature fields: accept as-is.
	if resemblesReport(m) {
		report, err := n.finish(m, TierDirect)
		return report, true, err
	}

	// Vendor envelope: the real report is nested inside a payload field.
	if payload, ok := envelopePayload(m); ok {
		report, err := n.resolveEnvelope(m, payload)
		return report, true, err
	}

	return nil, false, nil
}

// resolveEnvelope recovers the report from an envelope payload that is
// either a nested object or a JSON-encoded (or plain prose) string.
func (n *Normalizer) resolveEnvelope(envelope map[string]any, payload any) (*domain.CanonicalReport, error) {
	if nested, ok := payload.(map[string]any); ok {
		if resemblesReport(nested) {
			return n.finish(nested, TierDirect)
		}
		raw, _ := json.Marshal(nested)
		return n.synthesize(string(raw)), nil
	}

	text, ok := payload.(string)
	if !ok {
		return nil, &ExtractionError{Tier: TierDirect, Reason: "envelope payload is neither string nor object"}
	}

	// Try the payload whole, then a trailing balanced object inside it.
	if m, ok := parseObject(text); ok && resemblesReport(m) {
		return n.finish(m, TierDirect)
	}
	if obj, ok := trailingObject(text); ok {
		if m, ok := parseObject(obj); ok && resemblesReport(m) {
			return n.finish(m, TierDirect)
		}
	}

	// No recoverable JSON. An explicit error flag is surfaced as a provider
	// error; otherwise the provider answered a trivially-successful task
	// with a sentence, so synthesize a minimal report around it.
	if msg, flagged := envelopeError(envelope); flagged {
		return nil, &ProviderError{Message: msg}
	}
	return n.synthesize(text), nil
}

// synthesize builds a minimal valid report whose summary is the plain-text
// payload. The verdict stays not-ready: a reply without structured findings
// is not evidence the change passes review.
func (n *Normalizer) synthesize(text string) *domain.CanonicalReport {
	report := canonicalize(map[string]any{}, n.id, n.clk.Now())
	report.Summary = padSummary(text)
	report.ExitCriteria = domain.ExitCriteria{
		ReadyForPR: false,
		Reasons:    []string{"provider returned prose without structured findings"},
	}
	return report
}

// eventStream attempts Tier 1: input with multiple lines whose first
// non-blank line parses as JSON is treated as newline-delimited events.
// Events are scanned from the last line backward; the first event exposing a
// terminal payload field (or that is itself a full report) wins.
func (n *Normalizer) eventStream(raw string) (*domain.CanonicalReport, bool) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return nil, false
	}
	first := firstNonBlank(lines)
	if first == "" || !json.Valid([]byte(first)) {
		return nil, false
	}

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		event, ok := parseObject(line)
		if !ok {
			continue
		}
		if resemblesReport(event) {
			report, err := n.finish(event, TierStream)
			return report, err == nil
		}
		if report, ok := n.terminalField(event); ok {
			return report, true
		}
	}
	return nil, false
}

// terminalField extracts a report from an event's output/result/content
// field, either directly or via a trailing balanced object inside it.
func (n *Normalizer) terminalField(event map[string]any) (*domain.CanonicalReport, bool) {
	for _, key := range envelopeKeys {
		switch payload := event[key].(type) {
		case map[string]any:
			if resemblesReport(payload) {
				report, err := n.finish(payload, TierStream)
				return report, err == nil
			}
		case string:
			if payload == "" {
				continue
			}
			if m, ok := parseObject(payload); ok && resemblesReport(m) {
				report, err := n.finish(m, TierStream)
				return report, err == nil
			}
			if obj, ok := trailingObject(payload); ok {
				if m, ok := parseObject(obj); ok && resemblesReport(m) {
					report, err := n.finish(m, TierStream)
					return report, err == nil
				}
			}
		}
	}
	return nil, false
}

// finish canonicalizes an extracted structure, rejecting structures that do
// not resemble a review report.
func (n *Normalizer) finish(m map[string]any, tier Tier) (*domain.CanonicalReport, error) {
	if !resemblesReport(m) {
		return nil, &ExtractionError{Tier: tier, Reason: "extracted structure does not resemble a review report"}
	}
	return canonicalize(m, n.id, n.clk.Now()), nil
}

// resemblesReport reports whether the structure carries any review-report
// signature field.
func resemblesReport(m map[string]any) bool {
	for _, key := range []string{"findings", "assumptions", "tests", "tool"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// envelopePayload returns the envelope's payload field, if any.
func envelopePayload(m map[string]any) (any, bool) {
	for _, key := range envelopeKeys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// envelopeError reports whether the envelope signals an explicit error flag
// and returns the best available error text.
func envelopeError(m map[string]any) (string, bool) {
	flagged := false
	if v, ok := m["is_error"].(bool); ok && v {
		flagged = true
	}
	if sub, ok := m["subtype"].(string); ok && strings.Contains(strings.ToLower(sub), "error") {
		flagged = true
	}
	msg := stringField(m, "error")
	if msg != "" {
		flagged = true
	} else {
		msg = stringField(m, "result", "message")
	}
	if msg == "" {
		msg = "provider signaled an error with no message"
	}
	return msg, flagged
}

// parseObject parses s as a single JSON object.
func parseObject(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

func firstNonBlank(lines []string) string {
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			return t
		}
	}
	return ""
}
