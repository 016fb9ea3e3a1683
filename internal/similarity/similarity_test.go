package similarity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Personal Care - Morning", "personal care morning"},
		{"  CLEANING   SERVICE  ", "cleaning service"},
		{"Admin fee (monthly)!", "admin fee monthly"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScoreIdentical(t *testing.T) {
	inputs := []string{"Personal Care", "a", "ab", "Cleaning Service 2hr"}
	for _, s := range inputs {
		if got := Score(s, s); got != 1 {
			t.Errorf("Score(%q, %q) = %f, want 1", s, s, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	got := Score("community transport run", "overnight respite stay")
	if got < 0 || got >= 1 {
		t.Errorf("unrelated strings: score %f, want value in [0,1)", got)
	}
}

func TestScoreShortStrings(t *testing.T) {
	if got := Score("ab", "ab"); got != 1 {
		t.Errorf("exact short match: got %f, want 1", got)
	}
	if got := Score("ab", "ac"); got != 0 {
		t.Errorf("short mismatch: got %f, want 0", got)
	}
	if got := Score("ab", "personal care"); got != 0 {
		t.Errorf("short vs long: got %f, want 0", got)
	}
}

func TestScoreSimilarDescriptions(t *testing.T) {
	got := Score("Personal Care Morning Shift", "Personal Care Morning")
	if got < 0.6 {
		t.Errorf("near-identical descriptions scored %f, want >= 0.6", got)
	}
}

// The denominator uses the candidate's trigram set size or the reference's
// trigram count, whichever is larger, so swapping arguments of unequal
// length changes the score. Pinned deliberately: callers depend on the
// (candidate, reference) convention and a silent fix would shift every
// duplicate threshold.
func TestScoreIsAsymmetric(t *testing.T) {
	// Repeated trigrams in the longer string are counted positionally on
	// the reference side but collapse into a set on the candidate side.
	a := "admin admin admin"
	b := "admin"

	ab := Score(a, b)
	ba := Score(b, a)
	if ab == ba {
		t.Fatalf("expected asymmetric scores for unequal lengths, both were %f", ab)
	}
}
