package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"persona-match/internal/domain"
)

// HistoryRepository es el History Store. Las entradas son inmutables.
type HistoryRepository interface {
	Append(ctx context.Context, entry domain.PersonalityHistoryEntry) error
	Latest(ctx context.Context, userID string, limit int) ([]domain.PersonalityHistoryEntry, error)
}

type PgHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgHistoryRepository(pool *pgxpool.Pool) *PgHistoryRepository {
	return &PgHistoryRepository{pool: pool}
}

func (r *PgHistoryRepository) Append(ctx context.Context, entry domain.PersonalityHistoryEntry) error {
	const query = `
		INSERT INTO personality_history (id, user_id, type, trait_scores, trait_percentages, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		string(entry.Type),
		entry.Scores,
		entry.Percentages,
		entry.UpdatedAt,
	)
	return err
}

// Latest devuelve hasta limit entradas, la más reciente primero.
func (r *PgHistoryRepository) Latest(ctx context.Context, userID string, limit int) ([]domain.PersonalityHistoryEntry, error) {
	if limit <= 0 {
		limit = 1
	}
	const query = `
		SELECT id, user_id, type, trait_scores, trait_percentages, updated_at
		FROM personality_history
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PersonalityHistoryEntry
	for rows.Next() {
		var e domain.PersonalityHistoryEntry
		var typ string
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&typ,
			&e.Scores,
			&e.Percentages,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Type = domain.PersonalityType(typ)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
