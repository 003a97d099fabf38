package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.user_id, t.title, t.description, t.amount, t.type, t.account_type, t.date,
	t.category_id, c.name AS category_name, c.color AS category_color,
	t.created_at, t.updated_at
`

// scanTransaction reads one row in selectTransactionColumns order. The
// category join is LEFT, so name/color are NULL for orphaned references and
// the Category field stays nil.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var (
		typeStr, accountStr string
		description         sql.NullString
		catName, catColor   sql.NullString
	)

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.Title, &description, &tx.Amount, &typeStr, &accountStr, &tx.Date,
		&tx.CategoryID, &catName, &catColor,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.AccountType = transaction.AccountType(accountStr)
	tx.Description = description.String

	if tx.CategoryID != nil && catName.Valid {
		tx.Category = &transaction.CategoryRef{
			ID:    *tx.CategoryID,
			Name:  catName.String,
			Color: catColor.String,
		}
	}

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, title, description, amount, type, account_type, date, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Title,
		tx.Description,
		tx.Amount,
		tx.Type,
		tx.AccountType,
		tx.Date,
		tx.CategoryID,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.user_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.account_type = $2`

	args := []any{filter.UserID, filter.AccountType}
	argIdx := 3

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// UpdateTransaction writes the full mutable field set. The user_id predicate
// is the ownership check; a row owned by another user simply does not match.
func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	query := `
		UPDATE transactions
		SET title = $1, description = $2, amount = $3, type = $4, date = $5, category_id = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Title,
		tx.Description,
		tx.Amount,
		tx.Type,
		tx.Date,
		tx.CategoryID,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("updating transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating transaction: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting transaction: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) CreateTransactionBatch(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (user_id, title, description, amount, type, account_type, date, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, tx := range txs {
		err := dbTx.QueryRowContext(ctx, query,
			tx.UserID,
			tx.Title,
			tx.Description,
			tx.Amount,
			tx.Type,
			tx.AccountType,
			tx.Date,
			tx.CategoryID,
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}
