// Package export renders session data into the downloadable report
// formats. All exporters are pure projections of transaction, alert and
// decision data; no detection logic lives here.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"carelens/internal/classify"
	"carelens/internal/models"
)

// csvHeader is the fixed column set of the CSV report.
var csvHeader = []string{
	"date", "category", "description",
	"govt contribution", "client contribution",
	"income", "expense", "status",
}

// WriteCSV renders transactions as comma-delimited UTF-8 with a BOM, so
// spreadsheet applications pick the encoding up correctly.
func WriteCSV(txns []*models.Transaction, classifier *classify.Classifier) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, tx := range txns {
		var income, expense string
		if tx.Amount >= 0 {
			income = fmt.Sprintf("%.2f", tx.Amount)
		} else {
			expense = fmt.Sprintf("%.2f", -tx.Amount)
		}

		record := []string{
			tx.Date,
			classifier.Classify(tx.Description),
			tx.Description,
			formatOptional(tx.GovtContribution),
			formatOptional(tx.ClientContribution),
			income,
			expense,
			string(tx.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
