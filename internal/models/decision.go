package models

import (
	"time"

	"github.com/google/uuid"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDispute Decision = "dispute"
	DecisionNotSure Decision = "not-sure"
)

// ValidDecision reports whether d is one of the known decisions.
func ValidDecision(d Decision) bool {
	switch d {
	case DecisionApprove, DecisionDispute, DecisionNotSure:
		return true
	}
	return false
}

// TransactionDecision records a user's disposition of a single transaction.
type TransactionDecision struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	TransactionID uuid.UUID `db:"transaction_id"`
	Decision      Decision  `db:"decision"`
	Note          string    `db:"note"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// DecisionMemory aggregates how often a user made a given decision for a
// spending category. Counters are additive during normal use and only
// drop on an explicit user reset.
type DecisionMemory struct {
	UserID    uuid.UUID `db:"user_id"`
	Category  string    `db:"category"`
	Decision  Decision  `db:"decision"`
	Count     int       `db:"count"`
	UpdatedAt time.Time `db:"updated_at"`
}

// MinSuggestionCount is the number of matching past decisions required
// before a suggestion is offered for a new transaction.
const MinSuggestionCount = 2

// MemorySuggestion is the proactive default offered for a transaction
// once the user's history in its category is strong enough.
type MemorySuggestion struct {
	Category  string   `json:"category"`
	Suggested Decision `json:"suggested"`
	Count     int      `json:"count"`
}
