// Package summary derives the display aggregates consumed by report
// endpoints: category totals, monthly totals and alert counts.
package summary

import (
	"sort"

	"carelens/internal/classify"
	"carelens/internal/models"
	"carelens/internal/normalize"
)

// CategoryTotal is the spend and income attributed to one category.
type CategoryTotal struct {
	Category string        `json:"category"`
	View     classify.View `json:"view"`
	Expense  float64       `json:"expense"`
	Income   float64       `json:"income"`
	Count    int           `json:"count"`
}

// MonthTotal aggregates a calendar month (YYYY-MM). Transactions with
// unparseable dates land in the "unknown" bucket so they still count.
type MonthTotal struct {
	Month   string  `json:"month"`
	Expense float64 `json:"expense"`
	Income  float64 `json:"income"`
	Count   int     `json:"count"`
}

// AlertCounts tallies detector output by severity and type.
type AlertCounts struct {
	Total      int                     `json:"total"`
	BySeverity map[models.AlertSeverity]int `json:"by_severity"`
	ByType     map[models.AlertType]int     `json:"by_type"`
}

// Summary is the full aggregation for one session view.
type Summary struct {
	TransactionCount int             `json:"transaction_count"`
	TotalExpense     float64         `json:"total_expense"`
	TotalIncome      float64         `json:"total_income"`
	Categories       []CategoryTotal `json:"categories"`
	Months           []MonthTotal    `json:"months"`
	Alerts           AlertCounts     `json:"alerts"`
}

const unknownMonth = "unknown"

// Build aggregates transactions and alerts into a Summary. Categories are
// ordered by descending expense, months chronologically with the unknown
// bucket last.
func Build(txns []*models.Transaction, alerts []*models.Alert, classifier *classify.Classifier) Summary {
	s := Summary{TransactionCount: len(txns)}

	byCategory := make(map[string]*CategoryTotal)
	byMonth := make(map[string]*MonthTotal)

	for _, tx := range txns {
		category := classifier.Classify(tx.Description)
		ct, ok := byCategory[category]
		if !ok {
			ct = &CategoryTotal{Category: category, View: classifier.ViewFor(category)}
			byCategory[category] = ct
		}
		month := monthOf(tx.Date)
		mt, ok := byMonth[month]
		if !ok {
			mt = &MonthTotal{Month: month}
			byMonth[month] = mt
		}

		ct.Count++
		mt.Count++
		if tx.Amount < 0 {
			ct.Expense += -tx.Amount
			mt.Expense += -tx.Amount
			s.TotalExpense += -tx.Amount
		} else {
			ct.Income += tx.Amount
			mt.Income += tx.Amount
			s.TotalIncome += tx.Amount
		}
	}

	for _, ct := range byCategory {
		s.Categories = append(s.Categories, *ct)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Expense != s.Categories[j].Expense {
			return s.Categories[i].Expense > s.Categories[j].Expense
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})

	for _, mt := range byMonth {
		s.Months = append(s.Months, *mt)
	}
	sort.Slice(s.Months, func(i, j int) bool {
		a, b := s.Months[i].Month, s.Months[j].Month
		if a == unknownMonth {
			return false
		}
		if b == unknownMonth {
			return true
		}
		return a < b
	})

	s.Alerts = AlertCounts{
		BySeverity: make(map[models.AlertSeverity]int),
		ByType:     make(map[models.AlertType]int),
	}
	for _, a := range alerts {
		s.Alerts.Total++
		s.Alerts.BySeverity[a.Severity]++
		s.Alerts.ByType[a.Type]++
	}

	return s
}

func monthOf(date string) string {
	t, ok := normalize.ParseDate(date)
	if !ok {
		return unknownMonth
	}
	return t.Format("2006-01")
}
