// Package textmatch compares free-text answers from AI-generated quizzes.
//
// Normalization rules, applied in order:
//   - Unicode NFC composition
//   - Whitespace is trimmed
//   - Lowercase
//   - Trailing . , ! ? ; : characters are stripped (repeatedly)
//   - Internal whitespace runs collapse to a single space
//
// Comparison is exact on the normalized form: accents are kept and there is
// no fuzzy or substring matching.
package textmatch

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const trailingPunct = ".,!?;:"

// Normalize returns the canonical comparison form of s.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	for {
		trimmed := strings.TrimRight(s, trailingPunct)
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == s {
			break
		}
		s = trimmed
	}
	return strings.Join(strings.Fields(s), " ")
}

// Equal reports whether a and b normalize to the same string.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// IndexOf returns the index of the first option equal to pick, or -1.
func IndexOf(options []string, pick string) int {
	want := Normalize(pick)
	for i, o := range options {
		if Normalize(o) == want {
			return i
		}
	}
	return -1
}

// CountMatches returns how many options equal pick.
func CountMatches(options []string, pick string) int {
	want := Normalize(pick)
	n := 0
	for _, o := range options {
		if Normalize(o) == want {
			n++
		}
	}
	return n
}
