package normalize

import (
	"strings"
	"unicode"
)

// collapseWhitespace trims the string and collapses runs of whitespace to a
// single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// capitalizeSentences upper-cases the first letter of each sentence-like
// segment. Segments end at '.', '!' or '?' followed by whitespace.
func capitalizeSentences(s string) string {
	runes := []rune(s)
	atStart := true
	sawTerminator := false

	for i, r := range runes {
		switch {
		case r == '.' || r == '!' || r == '?':
			sawTerminator = true
		case unicode.IsSpace(r):
			if sawTerminator {
				atStart = true
			}
			sawTerminator = false
		default:
			sawTerminator = false
			if atStart && unicode.IsLetter(r) {
				runes[i] = unicode.ToUpper(r)
			}
			atStart = false
		}
	}

	return string(runes)
}

// truncateRunes limits a string to max runes. Truncation is rune-aware so
// multi-byte characters in names and degrees are never split.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
