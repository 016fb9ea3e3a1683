package dto

import (
	"carelens/internal/models"
	"carelens/internal/summary"
)

type AlertResponse struct {
	Type         string                `json:"type"`
	Severity     string                `json:"severity"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ReportResponse is the full session view: transactions, recomputed alerts
// and the derived summary.
type ReportResponse struct {
	SessionID    string                `json:"session_id"`
	Transactions []TransactionResponse `json:"transactions"`
	Alerts       []AlertResponse       `json:"alerts"`
	Summary      summary.Summary       `json:"summary"`
	Statements   []StatementResponse   `json:"statements"`
}

func NewAlertResponse(a *models.Alert, txns []TransactionResponse) AlertResponse {
	return AlertResponse{
		Type:         string(a.Type),
		Severity:     string(a.Severity),
		Title:        a.Title,
		Description:  a.Description,
		Transactions: txns,
	}
}
