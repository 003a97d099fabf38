package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT id, full_name, email, created_at FROM profiles WHERE id = $1`

	var p profile.Profile

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.FullName, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *profile.Profile) (bool, error) {
	query := `UPDATE profiles SET full_name = $1, email = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, p.FullName, p.Email, p.ID)
	if err != nil {
		return false, fmt.Errorf("updating profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating profile: %w", err)
	}

	return affected > 0, nil
}
