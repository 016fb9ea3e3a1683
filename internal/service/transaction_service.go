package service

import (
	"context"
	"errors"

	"carelens/internal/classify"
	"carelens/internal/dto"
	"carelens/internal/models"
	"carelens/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidStatus = errors.New("invalid status")

type TransactionService struct {
	txRepo     *repository.TransactionRepository
	classifier *classify.Classifier
	logger     *zap.Logger
}

func NewTransactionService(txRepo *repository.TransactionRepository, classifier *classify.Classifier, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo:     txRepo,
		classifier: classifier,
		logger:     logger,
	}
}

// UpdateStatus moves a transaction through the triage workflow.
func (s *TransactionService) UpdateStatus(ctx context.Context, transactionID uuid.UUID, status string) (*dto.TransactionResponse, error) {
	st := models.TransactionStatus(status)
	if !models.ValidStatus(st) {
		return nil, ErrInvalidStatus
	}

	if err := s.txRepo.UpdateStatus(ctx, transactionID, st); err != nil {
		return nil, err
	}

	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewTransactionResponse(tx, s.classifier)
	return &resp, nil
}

// ListByUser pages through everything a registered user has uploaded.
func (s *TransactionService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.TransactionResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	txns, err := s.txRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(txns))
	for i, tx := range txns {
		responses[i] = dto.NewTransactionResponse(tx, s.classifier)
	}
	return responses, nil
}
