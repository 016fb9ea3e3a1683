// Package similarity scores fuzzy textual closeness between transaction
// descriptions using character trigram overlap.
package similarity

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, strips non-alphanumeric runes and collapses
// runs of whitespace to single spaces. Grouping and comparison both run
// on this form so they agree on what "the same description" means.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Score returns a similarity in [0,1] between candidate and reference.
//
// The denominator is max(|trigram set of a|, len(b)-2), so the score is
// order dependent: Score(a, b) and Score(b, a) can differ when the inputs
// have different lengths. Callers must pass arguments consistently as
// (candidate, reference). The asymmetry is pinned by tests.
func Score(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		if na == "" {
			return 0
		}
		return 1
	}
	if len(na) < 3 || len(nb) < 3 {
		return 0
	}

	triset := make(map[string]struct{}, len(na))
	for i := 0; i+3 <= len(na); i++ {
		triset[na[i:i+3]] = struct{}{}
	}

	matches := 0
	for i := 0; i+3 <= len(nb); i++ {
		if _, ok := triset[nb[i:i+3]]; ok {
			matches++
		}
	}

	denom := len(triset)
	if d := len(nb) - 2; d > denom {
		denom = d
	}
	if denom == 0 {
		return 0
	}
	return float64(matches) / float64(denom)
}
