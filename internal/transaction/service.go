package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) (bool, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	CreateTransactionBatch(ctx context.Context, txs []*Transaction) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title       string
	Description string
	Amount      int64
	Type        Type
	AccountType AccountType
	Date        time.Time
	CategoryID  *uuid.UUID
}

// ListFilter scopes a listing to one user's ledger. UserID and AccountType are
// mandatory; there is no ambient scope to fall back to.
type ListFilter struct {
	UserID      uuid.UUID
	AccountType AccountType
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateParams is a partial field set; nil fields keep their stored value.
type UpdateParams struct {
	Title       *string
	Description *string
	Amount      *int64
	Type        *Type
	Date        *time.Time
	CategoryID  **uuid.UUID
}

func (p CreateParams) validate() error {
	if p.Title == "" {
		return ErrTitleRequired
	}

	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	if !p.Type.Valid() {
		return ErrInvalidType
	}

	if !p.AccountType.Valid() {
		return ErrInvalidAccount
	}

	return nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Amount:      params.Amount,
		Type:        params.Type,
		AccountType: params.AccountType,
		Date:        params.Date,
		CategoryID:  params.CategoryID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	if !filter.AccountType.Valid() {
		return nil, ErrInvalidAccount
	}

	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

// Update applies a partial field set to a transaction the user owns. The
// ownership check lives in the store's WHERE clause; an update that matches no
// row, whether missing or owned by someone else, reports ErrNotFound.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		tx.Title = *params.Title
	}

	if params.Description != nil {
		tx.Description = *params.Description
	}

	if params.Amount != nil {
		tx.Amount = *params.Amount
	}

	if params.Type != nil {
		tx.Type = *params.Type
	}

	if params.Date != nil {
		tx.Date = *params.Date
	}

	if params.CategoryID != nil {
		tx.CategoryID = *params.CategoryID
	}

	if tx.Title == "" {
		return nil, ErrTitleRequired
	}

	if tx.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !tx.Type.Valid() {
		return nil, ErrInvalidType
	}

	updated, err := s.repo.UpdateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, ErrNotFound
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.DeleteTransaction(ctx, userID, id)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrNotFound
	}

	return nil
}

// CreateBatch inserts all params in a single database transaction.
// Used by CSV import; either every row lands or none does.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = &Transaction{
			UserID:      userID,
			Title:       p.Title,
			Description: p.Description,
			Amount:      p.Amount,
			Type:        p.Type,
			AccountType: p.AccountType,
			Date:        p.Date,
			CategoryID:  p.CategoryID,
		}
	}

	if err := s.repo.CreateTransactionBatch(ctx, txs); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	return txs, nil
}
