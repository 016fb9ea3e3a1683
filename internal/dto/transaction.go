package dto

import (
	"time"

	"carelens/internal/classify"
	"carelens/internal/models"
)

type TransactionResponse struct {
	ID                 string                   `json:"id"`
	SessionID          string                   `json:"session_id"`
	Date               string                   `json:"date"`
	Description        string                   `json:"description"`
	Amount             float64                  `json:"amount"`
	Category           string                   `json:"category"`
	CategoryView       classify.View            `json:"category_view"`
	GovtContribution   *float64                 `json:"govt_contribution,omitempty"`
	ClientContribution *float64                 `json:"client_contribution,omitempty"`
	UnitCost           *float64                 `json:"unit_cost,omitempty"`
	RateUnits          string                   `json:"rate_units,omitempty"`
	Status             string                   `json:"status"`
	FileName           string                   `json:"file_name,omitempty"`
	Decision           *DecisionResponse        `json:"decision,omitempty"`
	Suggestion         *models.MemorySuggestion `json:"suggestion,omitempty"`
	CreatedAt          string                   `json:"created_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in-progress resolved escalated"`
}

// NewTransactionResponse projects a transaction for the API, resolving its
// category through the shared classifier.
func NewTransactionResponse(tx *models.Transaction, classifier *classify.Classifier) TransactionResponse {
	category := classifier.Classify(tx.Description)
	return TransactionResponse{
		ID:                 tx.ID.String(),
		SessionID:          tx.SessionID.String(),
		Date:               tx.Date,
		Description:        tx.Description,
		Amount:             tx.Amount,
		Category:           category,
		CategoryView:       classifier.ViewFor(category),
		GovtContribution:   tx.GovtContribution,
		ClientContribution: tx.ClientContribution,
		UnitCost:           tx.UnitCost,
		RateUnits:          tx.RateUnits,
		Status:             string(tx.Status),
		FileName:           tx.FileName,
		CreatedAt:          tx.CreatedAt.Format(time.RFC3339),
	}
}
