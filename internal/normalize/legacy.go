package normalize

import (
	"regexp"
	"strings"
)

// Legacy verbose wrapper markers. Older gemini builds prefixed every reply
// with a credentials banner, a timestamped run marker, and a trailing
// token-count footer around the actual payload.
var (
	legacyBannerPrefixes = []string{ //nolint:gochecknoglobals // Constant-like lookup table
		"Loaded cached credentials.",
		"Data collection is disabled.",
	}

	timestampMarker = regexp.MustCompile(`(?m)^\[?\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}[^\n]*$`)
	tokenFooter     = regexp.MustCompile(`(?mi)^\s*(total\s+)?tokens?\s*(used|consumed|:)[^\n]*$`)
)

// stripLegacyWrapper removes the known boilerplate banner lines and, when a
// timestamped marker line is present, discards everything up to and
// including it and strips the trailing token-count footer. Input without
// legacy markers is returned unchanged.
func stripLegacyWrapper(raw string) string {
	text := raw

	// Banner lines.
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		isBanner := false
		for _, prefix := range legacyBannerPrefixes {
			if strings.HasPrefix(strings.TrimSpace(line), prefix) {
				isBanner = true
				break
			}
		}
		if !isBanner {
			kept = append(kept, line)
		}
	}
	text = strings.Join(kept, "\n")

	// Timestamped marker: everything before it is preamble.
	if loc := lastMatch(timestampMarker, text); loc != nil {
		text = text[loc[1]:]
	}

	// Token-count footer: everything from it on is epilogue.
	if loc := tokenFooter.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	return strings.TrimSpace(text)
}

// lastMatch returns the location of the last match of re in s, or nil.
func lastMatch(re *regexp.Regexp, s string) []int {
	all := re.FindAllStringIndex(s, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// extractFence locates a fenced code block, preferring one labeled json,
// and returns its content. The fence label comparison is case-insensitive.
func extractFence(text string) (string, bool) {
	if content, ok := fencedBlock(text, "```json"); ok {
		return content, true
	}
	if content, ok := fencedBlock(text, "```"); ok {
		return content, true
	}
	return "", false
}

func fencedBlock(text, opener string) (string, bool) {
	lower := strings.ToLower(text)
	start := strings.Index(lower, strings.ToLower(opener))
	if start == -1 {
		return "", false
	}
	body := text[start+len(opener):]
	// Skip the remainder of the fence line (e.g. a language tag).
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		if opener == "```" {
			body = body[nl+1:]
		} else {
			body = strings.TrimPrefix(body, "\n")
		}
	}
	end := strings.Index(body, "```")
	if end == -1 {
		return "", false
	}
	content := strings.TrimSpace(body[:end])
	if content == "" {
		return "", false
	}
	return content, true
}
