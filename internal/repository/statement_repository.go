package repository

import (
	"context"
	"time"

	"carelens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var statementColumns = []string{
	"id", "session_id", "user_id", "file_name", "file_size",
	"source", "low_confidence", "transaction_count", "created_at",
}

type StatementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStatementRepository(db *pgxpool.Pool, logger *zap.Logger) *StatementRepository {
	return &StatementRepository{
		db:     db,
		logger: logger,
	}
}

func (r *StatementRepository) Create(ctx context.Context, st *models.Statement) error {
	query := squirrel.Insert("statements").
		Columns(statementColumns...).
		Values(
			st.ID, st.SessionID, st.UserID, st.FileName, st.FileSize,
			st.Source, st.LowConfidence, st.TransactionCount, st.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *StatementRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Statement, error) {
	query := squirrel.Select(statementColumns...).
		From("statements").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC").
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

	var statements []*models.Statement
	for rows.Next() {
		var st models.Statement
		if err := rows.Scan(
			&st.ID, &st.SessionID, &st.UserID, &st.FileName, &st.FileSize,
			&st.Source, &st.LowConfidence, &st.TransactionCount, &st.CreatedAt,
		); err != nil {
			return nil, err
		}
		statements = append(statements, &st)
	}

	return statements, rows.Err()
}

func (r *StatementRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	query := squirrel.Delete("statements").
		Where(squirrel.Eq{"session_id": sessionID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *StatementRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	query := squirrel.Delete("statements").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *StatementRepository) DeleteAnonymousBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := squirrel.Delete("statements").
		Where(squirrel.Eq{"user_id": uuid.Nil}).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
