package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"persona-match/internal/domain"
)

// CompatibilityRepository guarda la tabla lateral (user_1, user_2) -> score.
// Es un caché derivado: siempre se puede recalcular.
type CompatibilityRepository interface {
	ReplaceForUser(ctx context.Context, userID string, records []domain.CompatibilityRecord) error
	Get(ctx context.Context, userID1, userID2 string) (domain.CompatibilityRecord, error)
}

type PgCompatibilityRepository struct {
	pool *pgxpool.Pool
}

func NewPgCompatibilityRepository(pool *pgxpool.Pool) *PgCompatibilityRepository {
	return &PgCompatibilityRepository{pool: pool}
}

// ReplaceForUser borra las filas de userID como user_1 e inserta records en una transacción.
func (r *PgCompatibilityRepository) ReplaceForUser(ctx context.Context, userID string, records []domain.CompatibilityRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM compatibility WHERE user_1 = $1`, userID); err != nil {
		return fmt.Errorf("delete compatibility: %w", err)
	}

	const insert = `
		INSERT INTO compatibility (user_1, user_2, score, computed_at)
		VALUES ($1, $2, $3, $4)
	`
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insert, userID, rec.UserID2, rec.Score, rec.ComputedAt)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert compatibility: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *PgCompatibilityRepository) Get(ctx context.Context, userID1, userID2 string) (domain.CompatibilityRecord, error) {
	const query = `
		SELECT user_1, user_2, score, computed_at
		FROM compatibility
		WHERE user_1 = $1 AND user_2 = $2
	`
	var rec domain.CompatibilityRecord
	err := r.pool.QueryRow(ctx, query, userID1, userID2).Scan(
		&rec.UserID1,
		&rec.UserID2,
		&rec.Score,
		&rec.ComputedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CompatibilityRecord{}, ErrNotFound
	}
	return rec, err
}
