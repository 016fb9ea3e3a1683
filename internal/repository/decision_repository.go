package repository

import (
	"context"

	"carelens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DecisionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDecisionRepository(db *pgxpool.Pool, logger *zap.Logger) *DecisionRepository {
	return &DecisionRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert records the user's decision on a transaction, replacing any
// earlier decision on the same transaction.
func (r *DecisionRepository) Upsert(ctx context.Context, d *models.TransactionDecision) error {
	query := squirrel.Insert("transaction_decisions").
		Columns("id", "user_id", "transaction_id", "decision", "note", "created_at", "updated_at").
		Values(d.ID, d.UserID, d.TransactionID, d.Decision, d.Note, d.CreatedAt, d.UpdatedAt).
		Suffix("ON CONFLICT (user_id, transaction_id) DO UPDATE SET decision = EXCLUDED.decision, note = EXCLUDED.note, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DecisionRepository) GetByTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*models.TransactionDecision, error) {
	query := squirrel.Select("id", "user_id", "transaction_id", "decision", "note", "created_at", "updated_at").
		From("transaction_decisions").
		Where(squirrel.Eq{"user_id": userID, "transaction_id": transactionID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var d models.TransactionDecision
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.UserID, &d.TransactionID, &d.Decision, &d.Note, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// IncrementMemory bumps the per-category decision counter.
func (r *DecisionRepository) IncrementMemory(ctx context.Context, userID uuid.UUID, category string, decision models.Decision) error {
	query := squirrel.Insert("decision_memory").
		Columns("user_id", "category", "decision", "count", "updated_at").
		Values(userID, category, decision, 1, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (user_id, category, decision) DO UPDATE SET count = decision_memory.count + 1, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DecisionRepository) GetMemory(ctx context.Context, userID uuid.UUID) ([]*models.DecisionMemory, error) {
	query := squirrel.Select("user_id", "category", "decision", "count", "updated_at").
		From("decision_memory").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("category ASC", "count DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memory []*models.DecisionMemory
	for rows.Next() {
		var m models.DecisionMemory
		if err := rows.Scan(&m.UserID, &m.Category, &m.Decision, &m.Count, &m.UpdatedAt); err != nil {
			return nil, err
		}
		memory = append(memory, &m)
	}

	return memory, rows.Err()
}

// ClearMemory wipes the user's per-category counters. Individual decision
// rows are kept; only the learned suggestions reset.
func (r *DecisionRepository) ClearMemory(ctx context.Context, userID uuid.UUID) error {
	query := squirrel.Delete("decision_memory").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DecisionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	for _, table := range []string{"transaction_decisions", "decision_memory"} {
		query := squirrel.Delete(table).
			Where(squirrel.Eq{"user_id": userID}).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}
