package normalize

import (
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"2025-01-15", "2025-01-15", true},
		{"15/01/2025", "2025-01-15", true},
		{"15/01/25", "2025-01-15", true},
		{"12/25/2025", "2025-12-25", true},
		{"1/2/2025", "2025-02-01", true},
		{"15 Jan 2025", "2025-01-15", true},
		{"not a date", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q): ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.Format(CanonicalDateLayout) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format(CanonicalDateLayout), tt.expected)
			}
		})
	}
}

// Slash dates with day and month both at or below 12 are ambiguous between
// day-first and month-first conventions. The layout order is fixed, so the
// day-first reading always wins. Pinned here so a change is deliberate.
func TestParseDateAmbiguousSlashPrefersDayFirst(t *testing.T) {
	got, ok := ParseDate("01/02/2025")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if want := "2025-02-01"; got.Format(CanonicalDateLayout) != want {
		t.Errorf("got %s, want %s", got.Format(CanonicalDateLayout), want)
	}
}

func TestCanonicalDateKeepsUnparseable(t *testing.T) {
	if got := CanonicalDate("week 3 invoice"); got != "week 3 invoice" {
		t.Errorf("got %q, want raw string back", got)
	}
	if got := CanonicalDate("15/01/2025"); got != "2025-01-15" {
		t.Errorf("got %q, want 2025-01-15", got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween("2025-01-15", "2025-01-17"); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := DaysBetween("2025-01-17", "2025-01-15"); got != 2 {
		t.Errorf("reversed order: got %d, want 2", got)
	}
	if got := DaysBetween("garbage", "2025-01-15"); got <= 3 {
		t.Errorf("unparseable date must not land in a duplicate window, got %d", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"45.67", 45.67, true},
		{"-45.67", -45.67, true},
		{"$1,234.56", 1234.56, true},
		{"$ 99.00", 99.00, true},
		{"(50.00)", -50.00, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q): ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("ParseAmount(%q) = %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLooksLikeDate(t *testing.T) {
	for input, want := range map[string]bool{
		"2025-01-15": true,
		"15/01/2025": true,
		"1/2/25":     true,
		"45.67":      false,
		"Support":    false,
	} {
		if got := LooksLikeDate(input); got != want {
			t.Errorf("LooksLikeDate(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLooksLikeAmount(t *testing.T) {
	for input, want := range map[string]bool{
		"45.67":    true,
		"-45.67":   true,
		"1,234.56": false, // not bare; row fallback reparses with ParseAmount
		"$45.67":   false,
		"15/01/25": false,
		"Cleaning": false,
	} {
		if got := LooksLikeAmount(input); got != want {
			t.Errorf("LooksLikeAmount(%q) = %v, want %v", input, got, want)
		}
	}
}
