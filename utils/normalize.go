package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText strips diacritics and lowercases, so that comparisons
// ignore accents and case. Example: "Andrés" -> "andres".
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	// NFD splits base characters from combining marks, then the marks
	// (category Mn) are dropped.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// transform should not fail on valid UTF-8; fall back to the input
		stripped = s
	}

	return strings.ToLower(stripped)
}

// EmailLocalPart returns the part of an email address before the '@',
// or the whole string when there is none.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
