package assessment

import (
	"strings"
	"unicode"
)

// ParseAnswers splits raw input into single-character answer tokens. Runs
// ("ABNAB"), separated tokens ("A, B, N", "0 4 3") and grouped runs
// ("AAABB BBBBA") are all accepted. Letters are upper-cased; validation
// happens in Score.
func ParseAnswers(raw string) []Answer {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	var out []Answer
	for _, f := range fields {
		for _, r := range f {
			out = append(out, Answer(strings.ToUpper(string(r))))
		}
	}
	return out
}

// Repeat returns n copies of a; handy for building uniform sequences.
func Repeat(a Answer, n int) []Answer {
	out := make([]Answer, n)
	for i := range out {
		out[i] = a
	}
	return out
}
