package ingest

import (
	"strings"

	"carelens/internal/normalize"
)

// ParseCSV sniffs transaction rows out of loosely structured CSV text.
// Columns are classified by content, not position: a date-shaped column
// becomes the date, a bare decimal becomes the amount, and the first
// remaining column longer than two characters becomes the description.
// Rows that end up with neither a date nor a description are dropped.
//
// The split is a plain comma split; wrapping quotes are stripped but
// embedded commas inside quoted fields are not honoured. Statement
// exports in this domain do not produce them.
func ParseCSV(content string) []RawTransaction {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var rows []RawTransaction
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && isHeader(line) {
			continue
		}

		cols := splitColumns(line)
		if len(cols) == 0 {
			continue
		}

		var date, description string
		var amount float64
		var haveAmount bool

		for _, col := range cols {
			switch {
			case date == "" && normalize.LooksLikeDate(col):
				date = col
			case !haveAmount && normalize.LooksLikeAmount(col):
				amount, _ = normalize.ParseAmount(col)
				haveAmount = true
			case description == "" && len(col) > 2:
				description = col
			}
		}

		if description == "" && len(cols) > 1 {
			description = cols[1]
		}
		if date == "" {
			date = cols[0]
		}
		if amount == 0 && len(cols) > 0 {
			if v, ok := normalize.ParseAmount(cols[len(cols)-1]); ok {
				amount = v
			}
		}

		if date == "" && description == "" {
			continue
		}

		rows = append(rows, RawTransaction{
			Date:        normalize.CanonicalDate(date),
			Description: description,
			Amount:      amount,
		})
	}
	return rows
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "date") ||
		strings.Contains(lower, "amount") ||
		strings.Contains(lower, "description")
}

func splitColumns(line string) []string {
	parts := strings.Split(line, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		cols = append(cols, strings.TrimSpace(p))
	}
	return cols
}
