// Package jobs hosts the background maintenance schedule.
package jobs

import (
	"context"
	"time"

	"carelens/internal/repository"
	"carelens/pkg/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RetentionJob sweeps anonymous session data past the retention window.
// Registered-user data is never touched; those accounts delete explicitly.
type RetentionJob struct {
	txRepo *repository.TransactionRepository
	stRepo *repository.StatementRepository
	cfg    config.RetentionConfig
	logger *zap.Logger
	cron   *cron.Cron
}

func NewRetentionJob(
	txRepo *repository.TransactionRepository,
	stRepo *repository.StatementRepository,
	cfg config.RetentionConfig,
	logger *zap.Logger,
) *RetentionJob {
	return &RetentionJob{
		txRepo: txRepo,
		stRepo: stRepo,
		cfg:    cfg,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the sweep. A zero retention window disables it.
func (j *RetentionJob) Start() error {
	if j.cfg.Days <= 0 {
		j.logger.Info("Retention sweep disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.cfg.Schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Retention sweep scheduled",
		zap.String("schedule", j.cfg.Schedule),
		zap.Int("days", j.cfg.Days),
	)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *RetentionJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *RetentionJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.cfg.Days)

	removedTx, err := j.txRepo.DeleteAnonymousBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Retention sweep failed on transactions", zap.Error(err))
		return
	}
	removedSt, err := j.stRepo.DeleteAnonymousBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Retention sweep failed on statements", zap.Error(err))
		return
	}

	j.logger.Info("Retention sweep complete",
		zap.Time("cutoff", cutoff),
		zap.Int64("transactions_removed", removedTx),
		zap.Int64("statements_removed", removedSt),
	)
}
