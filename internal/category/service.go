package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID, accountType transaction.AccountType) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) (bool, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Color string
	Type  transaction.AccountType
}

func (p CreateParams) validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}

	if !hexColor.MatchString(p.Color) {
		return ErrInvalidColor
	}

	if !p.Type.Valid() {
		return transaction.ErrInvalidAccount
	}

	return nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Category, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	c := &Category{
		UserID: userID,
		Name:   params.Name,
		Color:  params.Color,
		Type:   params.Type,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns the user's categories for one account type, ordered by name.
func (s *Service) List(ctx context.Context, userID uuid.UUID, accountType transaction.AccountType) ([]*Category, error) {
	if !accountType.Valid() {
		return nil, transaction.ErrInvalidAccount
	}

	return s.repo.ListCategories(ctx, userID, accountType)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

type UpdateParams struct {
	Name  *string
	Color *string
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = *params.Name
	}

	if params.Color != nil {
		c.Color = *params.Color
	}

	if c.Name == "" {
		return nil, ErrNameRequired
	}

	if !hexColor.MatchString(c.Color) {
		return nil, ErrInvalidColor
	}

	updated, err := s.repo.UpdateCategory(ctx, c)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, ErrNotFound
	}

	return c, nil
}

// Delete removes a category the user owns. Transactions referencing it are
// not touched; the database clears the reference and views show them without
// a category.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.DeleteCategory(ctx, userID, id)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrNotFound
	}

	return nil
}
