package normalize

import "fmt"

// Tier identifies one extraction strategy in the fallback protocol.
type Tier string

// Extraction tiers, tried in order. The first that yields a parseable
// structure wins.
const (
	TierDirect Tier = "direct parse"
	TierStream Tier = "event stream"
	TierLegacy Tier = "legacy wrapper"
	TierFence  Tier = "markdown fence"
	TierScan   Tier = "balanced scan"
)

// ExtractionError reports that no tier recovered a usable structure from the
// raw text. It names the tier that was attempted last and why it failed, so
// callers can log a precise diagnostic. Callers must not infer or fabricate
// structure themselves; the only valid reaction is the fallback report.
type ExtractionError struct {
	// Tier is the extraction tier the failure is attributed to.
	Tier Tier

	// Reason describes why extraction failed.
	Reason string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at tier %q: %s", e.Tier, e.Reason)
}

// ProviderError reports that the provider's envelope carried an explicit
// error flag with no recoverable report payload.
type ProviderError struct {
	// Message is the provider's own error text.
	Message string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider reported error: %s", e.Message)
}
