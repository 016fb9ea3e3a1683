// Package normalize coerces the loosely formatted dates and amounts found
// in care-provider statements into canonical comparable forms.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalDateLayout is the storage and comparison form for dates.
const CanonicalDateLayout = "2006-01-02"

// dateLayouts is tried in order; the first successful parse wins.
// Day-first slash forms come before month-first, so "01/02/2025" resolves
// to 1 February. The order is fixed and not locale-aware.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/06",
	"02/01/2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
}

// fallbackLayouts covers textual forms that show up in exported statements.
var fallbackLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2-Jan-2006",
	"2006/01/02",
}

// ParseDate parses an arbitrary statement date string. ok is false when no
// layout matched; callers must then exclude the row from date arithmetic
// rather than fail.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CanonicalDate returns the YYYY-MM-DD form of s when it parses, or s
// unchanged when it does not, so unparseable rows keep their raw label.
func CanonicalDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(CanonicalDateLayout)
	}
	return strings.TrimSpace(s)
}

// DaysBetween returns the absolute whole-day distance between two date
// strings. When either side is unparseable it returns a value no duplicate
// window can satisfy.
func DaysBetween(a, b string) int {
	const unreachable = 1 << 30
	ta, ok := ParseDate(a)
	if !ok {
		return unreachable
	}
	tb, ok := ParseDate(b)
	if !ok {
		return unreachable
	}
	days := int(tb.Sub(ta).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

var amountClean = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount parses a monetary string, tolerating currency symbols and
// thousands separators. Parenthesised values are treated as negative.
// ok is false when nothing numeric remains, and the amount is zero.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	cleaned := amountClean.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// LooksLikeAmount reports whether s is a bare signed decimal, used when
// sniffing delimited columns. Currency symbols and thousands separators
// disqualify the column here; the row-level fallback reparses those with
// ParseAmount.
func LooksLikeAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var dateLike = regexp.MustCompile(`^\d{1,4}[-/]\d{1,2}[-/]\d{1,4}$`)

// LooksLikeDate reports whether s matches a digit-separated date shape.
func LooksLikeDate(s string) bool {
	return dateLike.MatchString(strings.TrimSpace(s))
}
