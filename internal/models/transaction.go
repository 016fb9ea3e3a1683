package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	StatusNew        TransactionStatus = "new"
	StatusInProgress TransactionStatus = "in-progress"
	StatusResolved   TransactionStatus = "resolved"
	StatusEscalated  TransactionStatus = "escalated"
)

// ValidStatus reports whether s is one of the known transaction statuses.
func ValidStatus(s TransactionStatus) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusEscalated:
		return true
	}
	return false
}

// Transaction is one line item from an uploaded care-provider statement.
// Date holds the canonical YYYY-MM-DD form when the source date parsed;
// otherwise it keeps the raw string so the row still shows up in totals.
// Amount is signed: negative for expenses, non-negative for income.
type Transaction struct {
	ID                 uuid.UUID         `db:"id"`
	SessionID          uuid.UUID         `db:"session_id"`
	UserID             uuid.UUID         `db:"user_id"` // uuid.Nil for anonymous sessions
	Date               string            `db:"date"`
	Description        string            `db:"description"`
	Amount             float64           `db:"amount"`
	GovtContribution   *float64          `db:"govt_contribution"`
	ClientContribution *float64          `db:"client_contribution"`
	UnitCost           *float64          `db:"unit_cost"`
	RateUnits          string            `db:"rate_units"`
	Status             TransactionStatus `db:"status"`
	FileName           string            `db:"file_name"`
	CreatedAt          time.Time         `db:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at"`
}
