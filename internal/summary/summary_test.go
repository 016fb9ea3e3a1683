package summary

import (
	"testing"

	"carelens/internal/classify"
	"carelens/internal/models"
)

func tx(date, description string, amount float64) *models.Transaction {
	return &models.Transaction{Date: date, Description: description, Amount: amount}
}

func TestBuild(t *testing.T) {
	classifier := classify.New()
	txns := []*models.Transaction{
		tx("2025-01-15", "Personal care morning", -120),
		tx("2025-01-20", "Personal care evening", -80),
		tx("2025-02-03", "Weekly cleaning visit", -60),
		tx("2025-02-10", "Funding deposit", 500),
		tx("no date here", "Admin fee", -25),
	}
	alerts := []*models.Alert{
		{Type: models.AlertDuplicate, Severity: models.SeverityHigh, Transactions: txns[:1]},
		{Type: models.AlertChanged, Severity: models.SeverityMedium, Transactions: txns[:2]},
	}

	s := Build(txns, alerts, classifier)

	if s.TransactionCount != 5 {
		t.Errorf("TransactionCount = %d, want 5", s.TransactionCount)
	}
	if s.TotalExpense != 285 {
		t.Errorf("TotalExpense = %f, want 285", s.TotalExpense)
	}
	if s.TotalIncome != 500 {
		t.Errorf("TotalIncome = %f, want 500", s.TotalIncome)
	}

	if len(s.Categories) == 0 || s.Categories[0].Category != "Personal Care" {
		t.Errorf("top category should be Personal Care by expense, got %+v", s.Categories)
	}
	if s.Categories[0].Expense != 200 {
		t.Errorf("Personal Care expense = %f, want 200", s.Categories[0].Expense)
	}

	// Months are chronological with the unparseable bucket last, and the
	// unparseable row still contributes to totals.
	if len(s.Months) != 3 {
		t.Fatalf("got %d months, want 3", len(s.Months))
	}
	if s.Months[0].Month != "2025-01" || s.Months[1].Month != "2025-02" {
		t.Errorf("months out of order: %+v", s.Months)
	}
	if s.Months[2].Month != "unknown" || s.Months[2].Expense != 25 {
		t.Errorf("unknown bucket = %+v, want expense 25", s.Months[2])
	}

	if s.Alerts.Total != 2 || s.Alerts.BySeverity[models.SeverityHigh] != 1 || s.Alerts.ByType[models.AlertChanged] != 1 {
		t.Errorf("alert counts wrong: %+v", s.Alerts)
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, nil, classify.New())
	if s.TransactionCount != 0 || s.TotalExpense != 0 || len(s.Categories) != 0 || s.Alerts.Total != 0 {
		t.Errorf("empty build produced %+v", s)
	}
}
