package profile

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

type UpdateParams struct {
	FullName *string
	Email    *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		p.FullName = *params.FullName
	}

	if params.Email != nil {
		p.Email = *params.Email
	}

	if p.FullName == "" {
		return nil, ErrNameRequired
	}

	if p.Email == "" {
		return nil, ErrEmailRequired
	}

	updated, err := s.repo.UpdateProfile(ctx, p)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, ErrNotFound
	}

	return p, nil
}
