package models

import (
	"time"

	"github.com/google/uuid"
)

type StatementSource string

const (
	SourceCSV    StatementSource = "csv"
	SourceOracle StatementSource = "oracle"
)

// Statement records the provenance of one uploaded file within a session.
// LowConfidence is raised when extraction yielded nothing or went through
// the best-effort oracle, so callers can invite manual review.
type Statement struct {
	ID               uuid.UUID       `db:"id"`
	SessionID        uuid.UUID       `db:"session_id"`
	UserID           uuid.UUID       `db:"user_id"`
	FileName         string          `db:"file_name"`
	FileSize         int64           `db:"file_size"`
	Source           StatementSource `db:"source"`
	LowConfidence    bool            `db:"low_confidence"`
	TransactionCount int             `db:"transaction_count"`
	CreatedAt        time.Time       `db:"created_at"`
}
