package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"persona-match/internal/domain"
)

// ProfileRepository es el Profile Store: intereses seleccionados y tipo actual.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	UpdateType(ctx context.Context, id string, t domain.PersonalityType) error
	UpdateInterestVector(ctx context.Context, id string, vec pgvector.Vector) error
	ListOthers(ctx context.Context, excludeID string) ([]domain.Profile, error)
	NearestByInterests(ctx context.Context, excludeID string, vec pgvector.Vector, limit int) ([]domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	const query = `
		SELECT id, username, name, mbti_type, selected_interests
		FROM profiles
		WHERE id = $1
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return domain.Profile{}, err
	}
	defer rows.Close()

	profiles, err := scanProfiles(rows)
	if err != nil {
		return domain.Profile{}, err
	}
	if len(profiles) == 0 {
		return domain.Profile{}, ErrNotFound
	}
	return profiles[0], nil
}

func (r *PgProfileRepository) UpdateType(ctx context.Context, id string, t domain.PersonalityType) error {
	const query = `
		UPDATE profiles
		SET mbti_type = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, string(t))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProfileRepository) UpdateInterestVector(ctx context.Context, id string, vec pgvector.Vector) error {
	const query = `
		UPDATE profiles
		SET interest_vector = $2
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, vec)
	return err
}

func (r *PgProfileRepository) ListOthers(ctx context.Context, excludeID string) ([]domain.Profile, error) {
	const query = `
		SELECT id, username, name, mbti_type, selected_interests
		FROM profiles
		WHERE id <> $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// NearestByInterests ordena por distancia coseno del vector de intereses.
// Perfiles sin vector quedan al final.
func (r *PgProfileRepository) NearestByInterests(ctx context.Context, excludeID string, vec pgvector.Vector, limit int) ([]domain.Profile, error) {
	if limit <= 0 {
		return r.ListOthers(ctx, excludeID)
	}
	const query = `
		SELECT id, username, name, mbti_type, selected_interests
		FROM profiles
		WHERE id <> $1
		ORDER BY interest_vector <=> $2 NULLS LAST, id
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, excludeID, vec, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func scanProfiles(rows pgxRows) ([]domain.Profile, error) {
	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var mbti sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.Username,
			&p.Name,
			&mbti,
			&p.SelectedInterests,
		); err != nil {
			return nil, err
		}
		if mbti.Valid {
			p.Type = domain.PersonalityType(mbti.String)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
