package dto

import (
	"time"

	"carelens/internal/models"
)

type StatementResponse struct {
	ID               string `json:"id"`
	FileName         string `json:"file_name"`
	FileSize         int64  `json:"file_size"`
	Source           string `json:"source"`
	LowConfidence    bool   `json:"low_confidence"`
	TransactionCount int    `json:"transaction_count"`
	CreatedAt        string `json:"created_at"`
}

// UploadResponse is returned after statement files are ingested: the new
// session handle plus per-file provenance.
type UploadResponse struct {
	SessionID        string              `json:"session_id"`
	TransactionCount int                 `json:"transaction_count"`
	LowConfidence    bool                `json:"low_confidence"`
	Statements       []StatementResponse `json:"statements"`
}

func NewStatementResponse(st *models.Statement) StatementResponse {
	return StatementResponse{
		ID:               st.ID.String(),
		FileName:         st.FileName,
		FileSize:         st.FileSize,
		Source:           string(st.Source),
		LowConfidence:    st.LowConfidence,
		TransactionCount: st.TransactionCount,
		CreatedAt:        st.CreatedAt.Format(time.RFC3339),
	}
}
