package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"carelens/internal/dto"
	"carelens/internal/ingest"
	"carelens/internal/models"
	"carelens/internal/normalize"
	"carelens/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoFiles = errors.New("no files uploaded")

// UploadFile is one statement file received from the client.
type UploadFile struct {
	Name string
	Data []byte
}

type StatementService struct {
	txRepo  *repository.TransactionRepository
	stRepo  *repository.StatementRepository
	adapter *ingest.Adapter
	logger  *zap.Logger
}

func NewStatementService(
	txRepo *repository.TransactionRepository,
	stRepo *repository.StatementRepository,
	adapter *ingest.Adapter,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		txRepo:  txRepo,
		stRepo:  stRepo,
		adapter: adapter,
		logger:  logger,
	}
}

// Upload ingests a batch of statement files into a session. A zero
// sessionID starts a fresh session; otherwise the files append to an
// existing one. Files are parsed concurrently; per-file failures degrade
// to zero rows instead of failing the batch. userID is uuid.Nil for
// anonymous uploads.
func (s *StatementService) Upload(ctx context.Context, userID, sessionID uuid.UUID, files []UploadFile) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	if sessionID == uuid.Nil {
		sessionID = uuid.New()
	}
	results := make([]ingest.Result, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file UploadFile) {
			defer wg.Done()
			results[i] = s.adapter.Ingest(ctx, file.Name, file.Data)
		}(i, file)
	}
	wg.Wait()

	now := time.Now()
	var transactions []*models.Transaction
	var statements []*models.Statement
	lowConfidence := false

	for i, res := range results {
		file := files[i]
		for _, raw := range res.Transactions {
			transactions = append(transactions, &models.Transaction{
				ID:          uuid.New(),
				SessionID:   sessionID,
				UserID:      userID,
				Date:        normalize.CanonicalDate(raw.Date),
				Description: sanitizeUTF8(raw.Description),
				Amount:      raw.Amount,
				Status:      models.StatusNew,
				FileName:    file.Name,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		if res.LowConfidence {
			lowConfidence = true
		}
		statements = append(statements, &models.Statement{
			ID:               uuid.New(),
			SessionID:        sessionID,
			UserID:           userID,
			FileName:         file.Name,
			FileSize:         int64(len(file.Data)),
			Source:           res.Source,
			LowConfidence:    res.LowConfidence,
			TransactionCount: len(res.Transactions),
			CreatedAt:        now,
		})
	}

	if err := s.txRepo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("save transactions: %w", err)
	}
	for _, st := range statements {
		if err := s.stRepo.Create(ctx, st); err != nil {
			return nil, fmt.Errorf("save statement record: %w", err)
		}
	}

	s.logger.Info("Statement batch ingested",
		zap.String("session_id", sessionID.String()),
		zap.Int("files", len(files)),
		zap.Int("transactions", len(transactions)),
		zap.Bool("low_confidence", lowConfidence),
	)

	resp := &dto.UploadResponse{
		SessionID:        sessionID.String(),
		TransactionCount: len(transactions),
		LowConfidence:    lowConfidence,
	}
	for _, st := range statements {
		resp.Statements = append(resp.Statements, dto.NewStatementResponse(st))
	}
	return resp, nil
}

// DeleteSession removes a session's transactions and provenance rows.
func (s *StatementService) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.txRepo.DeleteBySession(ctx, sessionID); err != nil {
		return err
	}
	return s.stRepo.DeleteBySession(ctx, sessionID)
}

// DeleteUserData wipes everything stored for a user.
func (s *StatementService) DeleteUserData(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.txRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.stRepo.DeleteByUser(ctx, userID)
}
