package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return Pipeline{strings.TrimSpace, lower}.Apply(email)
}

// NormalizeRoomNumber makes "  12 b" and "12B" the same room.
func NormalizeRoomNumber(number string) string {
	return Pipeline{TrimAndNormalize, removeSpaces, upper}.Apply(number)
}
