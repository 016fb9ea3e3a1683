package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"carelens/internal/classify"
	"carelens/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestWriteCSV(t *testing.T) {
	txns := []*models.Transaction{
		{
			Date:               "2025-03-01",
			Description:        "Personal Care Visit",
			Amount:             -120.50,
			GovtContribution:   floatPtr(100),
			ClientContribution: floatPtr(20.50),
			Status:             models.StatusNew,
		},
		{
			Date:        "2025-03-05",
			Description: "Direct Deposit",
			Amount:      500,
			Status:      models.StatusResolved,
		},
	}

	data, err := WriteCSV(txns, classify.New())
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("output missing UTF-8 BOM")
	}

	r := csv.NewReader(bytes.NewReader(data[3:]))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}

	header := strings.Join(records[0], ",")
	if !strings.HasPrefix(header, "date,category,description") {
		t.Errorf("unexpected header %q", header)
	}

	expense := records[1]
	if expense[1] != "Personal Care" {
		t.Errorf("category = %q, want Personal Care", expense[1])
	}
	if expense[5] != "" || expense[6] != "120.50" {
		t.Errorf("expense row income/expense = %q/%q, want empty/120.50", expense[5], expense[6])
	}
	if expense[3] != "100.00" || expense[4] != "20.50" {
		t.Errorf("contributions = %q/%q", expense[3], expense[4])
	}

	income := records[2]
	if income[5] != "500.00" || income[6] != "" {
		t.Errorf("income row income/expense = %q/%q, want 500.00/empty", income[5], income[6])
	}
	if income[3] != "" {
		t.Errorf("nil contribution rendered as %q, want empty", income[3])
	}
}

func TestWriteXLSXRoundTrips(t *testing.T) {
	txns := []*models.Transaction{
		{Date: "2025-03-01", Description: "Cleaning Service", Amount: -80, Status: models.StatusNew},
	}
	alerts := []*models.Alert{
		{Type: models.AlertUnusual, Severity: models.SeverityMedium, Title: "Unusually large charge", Description: "x", Transactions: txns},
	}

	data, err := WriteXLSX(txns, alerts, classify.New())
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output is not a zip container")
	}
}
