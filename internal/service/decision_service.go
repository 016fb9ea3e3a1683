package service

import (
	"context"
	"errors"
	"time"

	"carelens/internal/classify"
	"carelens/internal/dto"
	"carelens/internal/models"
	"carelens/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidDecision = errors.New("invalid decision")

type DecisionService struct {
	decisionRepo *repository.DecisionRepository
	txRepo       *repository.TransactionRepository
	classifier   *classify.Classifier
	logger       *zap.Logger
}

func NewDecisionService(
	decisionRepo *repository.DecisionRepository,
	txRepo *repository.TransactionRepository,
	classifier *classify.Classifier,
	logger *zap.Logger,
) *DecisionService {
	return &DecisionService{
		decisionRepo: decisionRepo,
		txRepo:       txRepo,
		classifier:   classifier,
		logger:       logger,
	}
}

// Decide records the user's disposition of a transaction and bumps the
// per-category memory counter that drives future suggestions. The
// response carries the refreshed memory so clients stay in sync.
func (s *DecisionService) Decide(ctx context.Context, userID, transactionID uuid.UUID, req *dto.DecideRequest) (*dto.DecideResponse, error) {
	decision := models.Decision(req.Decision)
	if !models.ValidDecision(decision) {
		return nil, ErrInvalidDecision
	}

	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	d := &models.TransactionDecision{
		ID:            uuid.New(),
		UserID:        userID,
		TransactionID: transactionID,
		Decision:      decision,
		Note:          req.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.decisionRepo.Upsert(ctx, d); err != nil {
		return nil, err
	}

	category := s.classifier.Classify(tx.Description)
	if err := s.decisionRepo.IncrementMemory(ctx, userID, category, decision); err != nil {
		s.logger.Warn("Failed to update decision memory",
			zap.String("category", category),
			zap.Error(err),
		)
	}

	memory, err := s.GetMemory(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to reload decision memory", zap.Error(err))
		memory = &dto.MemoryResponse{Entries: []dto.MemoryEntry{}}
	}

	return &dto.DecideResponse{
		Decision: dto.NewDecisionResponse(d),
		Memory:   *memory,
	}, nil
}

// SuggestionFor returns the learned default for a transaction's category,
// or nil when the user's history there is still too thin.
func (s *DecisionService) SuggestionFor(ctx context.Context, userID, transactionID uuid.UUID) (*models.MemorySuggestion, error) {
	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	category := s.classifier.Classify(tx.Description)

	memory, err := s.decisionRepo.GetMemory(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, m := range memory {
		if m.Category != category {
			continue
		}
		// Entries come back count-descending within a category.
		if m.Count < models.MinSuggestionCount {
			return nil, nil
		}
		return &models.MemorySuggestion{
			Category:  m.Category,
			Suggested: m.Decision,
			Count:     m.Count,
		}, nil
	}
	return nil, nil
}

// GetMemory returns the user's learned per-category counters.
func (s *DecisionService) GetMemory(ctx context.Context, userID uuid.UUID) (*dto.MemoryResponse, error) {
	memory, err := s.decisionRepo.GetMemory(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MemoryResponse{Entries: []dto.MemoryEntry{}}
	for _, m := range memory {
		resp.Entries = append(resp.Entries, dto.MemoryEntry{
			Category: m.Category,
			Decision: string(m.Decision),
			Count:    m.Count,
		})
	}
	return resp, nil
}

// ClearMemory resets the learned counters without touching individual
// decision records.
func (s *DecisionService) ClearMemory(ctx context.Context, userID uuid.UUID) error {
	return s.decisionRepo.ClearMemory(ctx, userID)
}

// DeleteUserData wipes all decisions and memory for a user.
func (s *DecisionService) DeleteUserData(ctx context.Context, userID uuid.UUID) error {
	return s.decisionRepo.DeleteByUser(ctx, userID)
}
