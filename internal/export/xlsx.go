package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"carelens/internal/classify"
	"carelens/internal/models"
)

const (
	sheetTransactions = "Transactions"
	sheetAlerts       = "Alerts"
)

// WriteXLSX renders a two-sheet workbook: the transaction ledger and the
// alerts raised against it.
func WriteXLSX(txns []*models.Transaction, alerts []*models.Alert, classifier *classify.Classifier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetAlerts); err != nil {
		return nil, err
	}

	if err := writeTransactionSheet(f, txns, classifier); err != nil {
		return nil, err
	}
	if err := writeAlertSheet(f, alerts); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTransactionSheet(f *excelize.File, txns []*models.Transaction, classifier *classify.Classifier) error {
	header := []interface{}{
		"Date", "Category", "Description",
		"Govt Contribution", "Client Contribution",
		"Income", "Expense", "Status",
	}
	if err := f.SetSheetRow(sheetTransactions, "A1", &header); err != nil {
		return err
	}

	for i, tx := range txns {
		var income, expense interface{}
		if tx.Amount >= 0 {
			income = tx.Amount
		} else {
			expense = -tx.Amount
		}
		row := []interface{}{
			tx.Date,
			classifier.Classify(tx.Description),
			tx.Description,
			optionalCell(tx.GovtContribution),
			optionalCell(tx.ClientContribution),
			income,
			expense,
			string(tx.Status),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetTransactions, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeAlertSheet(f *excelize.File, alerts []*models.Alert) error {
	header := []interface{}{"Type", "Severity", "Title", "Description", "Transactions"}
	if err := f.SetSheetRow(sheetAlerts, "A1", &header); err != nil {
		return err
	}

	for i, a := range alerts {
		row := []interface{}{
			string(a.Type),
			string(a.Severity),
			a.Title,
			a.Description,
			len(a.Transactions),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetAlerts, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func optionalCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
