// Package normalize canonicalizes free-text fiscal fields for tolerant equality.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AddressTokens are street-type words dropped before comparison
var AddressTokens = []string{"rua", "avenida", "av", "rodovia", "estrada", "travessa"}

var addressTokenPattern = regexp.MustCompile(`\b(` + strings.Join(AddressTokens, "|") + `)\b`)

// Normalize lowercases s, strips diacritics, drops whole-word address tokens,
// removes punctuation and collapses whitespace. The steps run in that order.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	s = addressTokenPattern.ReplaceAllString(s, "")
	s = strings.Map(keepWordOrSpace, s)
	return strings.Join(strings.Fields(s), " ")
}

// Equivalent returns true if a and b have the same normalized form
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// stripDiacritics decomposes s (NFD) and removes every combining mark
func stripDiacritics(s string) string {
	// Transformers carry state; build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// keepWordOrSpace keeps ASCII word characters and whitespace
func keepWordOrSpace(r rune) rune {
	switch {
	case r == '_',
		r >= 'a' && r <= 'z',
		r >= 'A' && r <= 'Z',
		r >= '0' && r <= '9',
		unicode.IsSpace(r):
		return r
	}
	return -1
}
