package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository es el Post Store; el motor solo lee etiquetas.
type PostRepository interface {
	TagsByUser(ctx context.Context, userID string) ([]string, error)
}

type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

// TagsByUser aplana las etiquetas de todas las publicaciones del usuario.
func (r *PgPostRepository) TagsByUser(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT tags
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var postTags []string
		if err := rows.Scan(&postTags); err != nil {
			return nil, err
		}
		tags = append(tags, postTags...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
