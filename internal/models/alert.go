package models

type AlertType string

const (
	AlertDuplicate     AlertType = "duplicate"
	AlertUnusual       AlertType = "unusual"
	AlertChanged       AlertType = "changed"
	AlertManagementFee AlertType = "management-fee"
)

type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// SeverityRank orders severities for sorting: high before medium before low.
func SeverityRank(s AlertSeverity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// Alert is a detector finding. Alerts are never persisted; they are
// recomputed from the session's transactions on every view.
// Transactions is never empty; for duplicate pairs the first entry is
// the original and the second the suspected repeat.
type Alert struct {
	Type         AlertType      `json:"type"`
	Severity     AlertSeverity  `json:"severity"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Transactions []*Transaction `json:"transactions"`
}
