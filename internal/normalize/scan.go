package normalize

import "strings"

// ExtractBalanced locates the first '{' or '[', whichever opens earliest, and
// walks forward to its matching closer. The walk tracks an in-string flag
// toggled by unescaped double quotes, a backslash-escape flag that suppresses
// the next character's effect on the in-string flag, and a depth counter that
// only moves while outside a string. The match ends when depth returns to
// zero on the delimiter matching the opener.
//
// No opener found, or depth never returning to zero, is an explicit typed
// failure. This function never guesses.
func ExtractBalanced(raw string) (string, error) {
	start := -1
	objIdx := strings.IndexByte(raw, '{')
	arrIdx := strings.IndexByte(raw, '[')
	switch {
	case objIdx == -1 && arrIdx == -1:
		return "", &ExtractionError{Tier: TierScan, Reason: "no opening delimiter found"}
	case objIdx == -1:
		start = arrIdx
	case arrIdx == -1 || objIdx < arrIdx:
		start = objIdx
	default:
		start = arrIdx
	}

	end := balancedEnd(raw, start)
	if end == -1 {
		return "", &ExtractionError{Tier: TierScan, Reason: "unbalanced delimiters, depth never returned to zero"}
	}
	return raw[start:end], nil
}

// balancedEnd walks raw from the opener at start and returns the index just
// past the matching closing delimiter, or -1 if the structure never closes
// or closes on the wrong delimiter.
func balancedEnd(raw string, start int) int {
	opener := raw[start]
	var closer byte
	switch opener {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return -1
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				if c == closer {
					return i + 1
				}
				return -1
			}
		}
	}
	return -1
}

// trailingObject searches text for the last complete balanced {...} and
// returns it. This recovers a report that a provider appended after prose
// inside an envelope payload string.
func trailingObject(text string) (string, bool) {
	var match string
	for i := 0; i < len(text); {
		idx := strings.IndexByte(text[i:], '{')
		if idx == -1 {
			break
		}
		start := i + idx
		if end := balancedEnd(text, start); end != -1 {
			match = text[start:end]
			i = end
			continue
		}
		i = start + 1
	}
	return match, match != ""
}
