package dto

import (
	"time"

	"carelens/internal/models"
)

type DecideRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve dispute not-sure"`
	Note     string `json:"note"`
}

type DecisionResponse struct {
	TransactionID string `json:"transaction_id"`
	Decision      string `json:"decision"`
	Note          string `json:"note,omitempty"`
	UpdatedAt     string `json:"updated_at"`
}

// DecideResponse pairs the recorded decision with the user's refreshed
// per-category memory.
type DecideResponse struct {
	Decision DecisionResponse `json:"decision"`
	Memory   MemoryResponse   `json:"memory"`
}

type MemoryResponse struct {
	Entries []MemoryEntry `json:"entries"`
}

type MemoryEntry struct {
	Category string `json:"category"`
	Decision string `json:"decision"`
	Count    int    `json:"count"`
}

func NewDecisionResponse(d *models.TransactionDecision) DecisionResponse {
	return DecisionResponse{
		TransactionID: d.TransactionID.String(),
		Decision:      string(d.Decision),
		Note:          d.Note,
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}
