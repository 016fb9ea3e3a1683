package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"carelens/internal/classify"
	"carelens/internal/models"
	"carelens/internal/summary"
)

// WritePDF renders a printable statement report: summary totals, the list
// of alerts and a paginated transaction table.
func WritePDF(txns []*models.Transaction, alerts []*models.Alert, sum *summary.Summary, classifier *classify.Classifier) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Statement Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeSummaryBlock(pdf, sum)
	writeAlertBlock(pdf, alerts)
	writeTransactionTable(pdf, txns, classifier)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummaryBlock(pdf *fpdf.Fpdf, sum *summary.Summary) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Transactions: %d", sum.TransactionCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total income: $%.2f", sum.TotalIncome), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total expenses: $%.2f", sum.TotalExpense), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf(
		"Alerts: %d high, %d medium, %d low",
		sum.Alerts.BySeverity[models.SeverityHigh],
		sum.Alerts.BySeverity[models.SeverityMedium],
		sum.Alerts.BySeverity[models.SeverityLow],
	), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func writeAlertBlock(pdf *fpdf.Fpdf, alerts []*models.Alert) {
	if len(alerts) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Alerts", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, a := range alerts {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("[%s] %s", a.Severity, a.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, a.Description, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(3)
}

func writeTransactionTable(pdf *fpdf.Fpdf, txns []*models.Transaction, classifier *classify.Classifier) {
	widths := []float64{22, 35, 88, 22, 23}
	headers := []string{"Date", "Category", "Description", "Income", "Expense"}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Transactions", "", 1, "L", false, 0, "")
	drawHeader()

	for _, tx := range txns {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			drawHeader()
		}
		var income, expense string
		if tx.Amount >= 0 {
			income = fmt.Sprintf("%.2f", tx.Amount)
		} else {
			expense = fmt.Sprintf("%.2f", -tx.Amount)
		}
		desc := tx.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		pdf.CellFormat(widths[0], 6, tx.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, classifier.Classify(tx.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, income, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, expense, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}
