package entity

import "strings"

// NormalizeAnswer trims surrounding whitespace and folds ASCII letters to
// lower case. Non-ASCII runes are left untouched.
func NormalizeAnswer(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, trimmed)
}
