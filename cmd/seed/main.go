// Seeds a demo session from the CSV fixtures in cmd/seed/fixtures, so a
// fresh install has something to look at. Prints the session ID on success.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"carelens/internal/ingest"
	"carelens/internal/models"
	"carelens/internal/normalize"
	"carelens/internal/repository"
	"carelens/pkg/config"
	"carelens/pkg/logger"
	"carelens/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(db, appLogger)
	stRepo := repository.NewStatementRepository(db, appLogger)

	fixtureDir := filepath.Join("cmd", "seed", "fixtures")
	sessionID, count, err := seedSession(ctx, fixtureDir, txRepo, stRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}

	appLogger.Info("Demo session seeded",
		zap.String("session_id", sessionID.String()),
		zap.Int("transactions", count),
	)
	fmt.Println(sessionID)
}

func seedSession(
	ctx context.Context,
	dir string,
	txRepo *repository.TransactionRepository,
	stRepo *repository.StatementRepository,
	appLogger *zap.Logger,
) (uuid.UUID, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("read fixture dir: %w", err)
	}

	sessionID := uuid.New()
	now := time.Now()
	total := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return uuid.Nil, 0, fmt.Errorf("read fixture %s: %w", entry.Name(), err)
		}

		rows := ingest.ParseCSV(string(data))
		var transactions []*models.Transaction
		for _, raw := range rows {
			transactions = append(transactions, &models.Transaction{
				ID:          uuid.New(),
				SessionID:   sessionID,
				UserID:      uuid.Nil,
				Date:        normalize.CanonicalDate(raw.Date),
				Description: raw.Description,
				Amount:      raw.Amount,
				Status:      models.StatusNew,
				FileName:    entry.Name(),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}

		if err := txRepo.CreateBatch(ctx, transactions); err != nil {
			return uuid.Nil, 0, fmt.Errorf("insert fixture %s: %w", entry.Name(), err)
		}
		if err := stRepo.Create(ctx, &models.Statement{
			ID:               uuid.New(),
			SessionID:        sessionID,
			UserID:           uuid.Nil,
			FileName:         entry.Name(),
			FileSize:         int64(len(data)),
			Source:           models.SourceCSV,
			LowConfidence:    len(rows) == 0,
			TransactionCount: len(rows),
			CreatedAt:        now,
		}); err != nil {
			return uuid.Nil, 0, fmt.Errorf("record fixture %s: %w", entry.Name(), err)
		}

		appLogger.Info("Fixture loaded",
			zap.String("file", entry.Name()),
			zap.Int("rows", len(rows)),
		)
		total += len(rows)
	}

	return sessionID, total, nil
}
