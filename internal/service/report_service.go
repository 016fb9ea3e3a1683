package service

import (
	"context"
	"errors"
	"fmt"

	"carelens/internal/classify"
	"carelens/internal/detector"
	"carelens/internal/dto"
	"carelens/internal/export"
	"carelens/internal/models"
	"carelens/internal/repository"
	"carelens/internal/summary"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ExportFormat names a downloadable report rendering.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// ExportResult is a rendered report ready to send.
type ExportResult struct {
	Data        []byte
	ContentType string
	FileName    string
}

// ReportService assembles the session view: alerts are recomputed from
// stored transactions on every call rather than persisted.
type ReportService struct {
	txRepo       *repository.TransactionRepository
	stRepo       *repository.StatementRepository
	decisionRepo *repository.DecisionRepository
	detector     *detector.Detector
	classifier   *classify.Classifier
	logger       *zap.Logger
}

func NewReportService(
	txRepo *repository.TransactionRepository,
	stRepo *repository.StatementRepository,
	decisionRepo *repository.DecisionRepository,
	det *detector.Detector,
	classifier *classify.Classifier,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		txRepo:       txRepo,
		stRepo:       stRepo,
		decisionRepo: decisionRepo,
		detector:     det,
		classifier:   classifier,
		logger:       logger,
	}
}

// GetReport builds the full session view. userID is uuid.Nil for
// anonymous access; when set, decisions and memory suggestions are
// attached to the transaction projections.
func (s *ReportService) GetReport(ctx context.Context, sessionID, userID uuid.UUID, mode detector.ManagementMode) (*dto.ReportResponse, error) {
	txns, err := s.txRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, ErrSessionNotFound
	}

	alerts := s.detector.Detect(txns, detector.Options{Management: mode})
	sum := summary.Build(txns, alerts, s.classifier)

	suggestions := s.loadSuggestions(ctx, userID)

	txResponses := make([]dto.TransactionResponse, len(txns))
	byID := make(map[uuid.UUID]int, len(txns))
	for i, tx := range txns {
		resp := dto.NewTransactionResponse(tx, s.classifier)
		if sug, ok := suggestions[resp.Category]; ok {
			resp.Suggestion = sug
		}
		if userID != uuid.Nil {
			if d, err := s.decisionRepo.GetByTransaction(ctx, userID, tx.ID); err == nil {
				dr := dto.NewDecisionResponse(d)
				resp.Decision = &dr
				resp.Suggestion = nil
			}
		}
		txResponses[i] = resp
		byID[tx.ID] = i
	}

	alertResponses := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		refs := make([]dto.TransactionResponse, 0, len(a.Transactions))
		for _, tx := range a.Transactions {
			if idx, ok := byID[tx.ID]; ok {
				refs = append(refs, txResponses[idx])
			}
		}
		alertResponses[i] = dto.NewAlertResponse(a, refs)
	}

	resp := &dto.ReportResponse{
		SessionID:    sessionID.String(),
		Transactions: txResponses,
		Alerts:       alertResponses,
		Summary:      sum,
	}

	statements, err := s.stRepo.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Warn("Failed to load statement provenance", zap.Error(err))
	}
	for _, st := range statements {
		resp.Statements = append(resp.Statements, dto.NewStatementResponse(st))
	}

	return resp, nil
}

// Export renders the session in the requested format.
func (s *ReportService) Export(ctx context.Context, sessionID uuid.UUID, format ExportFormat, mode detector.ManagementMode) (*ExportResult, error) {
	txns, err := s.txRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, ErrSessionNotFound
	}

	alerts := s.detector.Detect(txns, detector.Options{Management: mode})

	switch format {
	case FormatCSV:
		data, err := export.WriteCSV(txns, s.classifier)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Data: data, ContentType: "text/csv; charset=utf-8", FileName: exportName(sessionID, "csv")}, nil
	case FormatXLSX:
		data, err := export.WriteXLSX(txns, alerts, s.classifier)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			FileName:    exportName(sessionID, "xlsx"),
		}, nil
	case FormatPDF:
		sum := summary.Build(txns, alerts, s.classifier)
		data, err := export.WritePDF(txns, alerts, &sum, s.classifier)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Data: data, ContentType: "application/pdf", FileName: exportName(sessionID, "pdf")}, nil
	}
	return nil, ErrUnsupportedFormat
}

func (s *ReportService) loadSuggestions(ctx context.Context, userID uuid.UUID) map[string]*models.MemorySuggestion {
	if userID == uuid.Nil {
		return nil
	}
	memory, err := s.decisionRepo.GetMemory(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load decision memory", zap.Error(err))
		return nil
	}

	// GetMemory orders by count descending within a category, so the first
	// entry seen per category is the strongest.
	suggestions := make(map[string]*models.MemorySuggestion)
	for _, m := range memory {
		if _, seen := suggestions[m.Category]; seen {
			continue
		}
		if m.Count < models.MinSuggestionCount {
			continue
		}
		suggestions[m.Category] = &models.MemorySuggestion{
			Category:  m.Category,
			Suggested: m.Decision,
			Count:     m.Count,
		}
	}
	return suggestions
}

func exportName(sessionID uuid.UUID, ext string) string {
	return fmt.Sprintf("statement-report-%s.%s", sessionID.String()[:8], ext)
}
