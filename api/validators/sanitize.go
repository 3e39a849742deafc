package validators

import "strings"

// SanitizeString trims surrounding whitespace, drops control characters
// (newlines and tabs survive, quote notes are multi-line), and truncates to
// maxLen runes so a multi-byte character is never cut in half.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, input)

	trimmed := strings.TrimSpace(cleaned)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) <= maxLen {
		return trimmed
	}
	return string(runes[:maxLen])
}
