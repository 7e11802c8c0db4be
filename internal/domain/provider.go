// Package domain provides shared domain types for the quorum review pipeline.
package domain

// Provider represents a review tool provider (e.g., "claude", "codex").
// This determines which CLI tool is invoked to produce a review.
type Provider string

// Provider constants define the supported review providers.
const (
	// ProviderClaude uses the Claude Code CLI from Anthropic.
	ProviderClaude Provider = "claude"

	// ProviderCodex uses the Codex CLI from OpenAI.
	ProviderCodex Provider = "codex"

	// ProviderGemini uses the Gemini CLI from Google.
	ProviderGemini Provider = "gemini"

	// ProviderGeneric invokes a user-configured review command.
	ProviderGeneric Provider = "generic"
)

// String returns the string representation of the Provider.
// This implements fmt.Stringer for convenient logging and debugging.
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the provider is a recognized type.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderClaude, ProviderCodex, ProviderGemini, ProviderGeneric:
		return true
	}
	return false
}

// DefaultModel returns the default model alias for this provider.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderClaude:
		return "sonnet"
	case ProviderCodex:
		return "codex"
	case ProviderGemini:
		return "flash"
	default:
		return ""
	}
}

// KnownProviders returns all providers with built-in command policies.
func KnownProviders() []Provider {
	return []Provider{ProviderClaude, ProviderCodex, ProviderGemini, ProviderGeneric}
}
