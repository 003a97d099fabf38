package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/category"
	"github.com/granahq/grana/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, name, color, type, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Color, c.Type).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, userID, id uuid.UUID) (*category.Category, error) {
	query := `
		SELECT id, user_id, name, color, type, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`

	var c category.Category

	var typeStr string

	err := s.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &typeStr, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	c.Type = transaction.AccountType(typeStr)

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, userID uuid.UUID, accountType transaction.AccountType) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, name, color, type, created_at
		FROM categories
		WHERE user_id = $1 AND type = $2
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, userID, accountType)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*category.Category

	for rows.Next() {
		var c category.Category

		var typeStr string

		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &typeStr, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Type = transaction.AccountType(typeStr)
		cats = append(cats, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) (bool, error) {
	query := `
		UPDATE categories
		SET name = $1, color = $2
		WHERE id = $3 AND user_id = $4
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Color, c.ID, c.UserID)
	if err != nil {
		return false, fmt.Errorf("updating category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating category: %w", err)
	}

	return affected > 0, nil
}

// DeleteCategory removes the row. transactions.category_id carries
// ON DELETE SET NULL, so referencing transactions are orphaned, not deleted.
func (s *Store) DeleteCategory(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting category: %w", err)
	}

	return affected > 0, nil
}
