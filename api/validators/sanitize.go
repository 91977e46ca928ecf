package validators

import (
	"strings"
	"unicode/utf8"
)

// usernameMaxRunes mirrors the users.username column width.
const usernameMaxRunes = 150

// SanitizeString trims input and caps it at maxRunes characters. Multi-byte
// characters are never split. maxRunes <= 0 disables the cap.
func SanitizeString(input string, maxRunes int) string {
	trimmed := strings.TrimSpace(input)
	if maxRunes <= 0 || utf8.RuneCountInString(trimmed) <= maxRunes {
		return trimmed
	}
	n := 0
	for i := range trimmed {
		if n == maxRunes {
			return trimmed[:i]
		}
		n++
	}
	return trimmed
}

// SanitizeUsername trims input and caps it at the username column width.
func SanitizeUsername(input string) string {
	return SanitizeString(input, usernameMaxRunes)
}
