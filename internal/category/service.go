package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, filter ListFilter) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountTransactions(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name string `json:"name" validate:"required"`
	Type Type   `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

type UpdateParams struct {
	Name *string `json:"name,omitempty"`
	Type *Type   `json:"type,omitempty" validate:"omitempty,oneof=INCOME EXPENSE"`
}

type ListFilter struct {
	Type *Type
}

func (p *UpdateParams) normalize() {
	if p.Name != nil && *p.Name == "" {
		p.Name = nil
	}

	if p.Type != nil && *p.Type == "" {
		p.Type = nil
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c := &Category{
		Name: params.Name,
		Type: params.Type,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Category, error) {
	return s.repo.ListCategories(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Category, error) {
	params.normalize()

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = *params.Name
	}

	if params.Type != nil {
		c.Type = *params.Type
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete refuses to remove a category while any transaction references it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("counting linked transactions: %w", err)
	}

	if n > 0 {
		return &LinkedTransactionsError{Count: n}
	}

	err = s.repo.DeleteCategory(ctx, id)
	if !errors.Is(err, ErrInUse) {
		return err
	}

	// A transaction was linked after the count.
	n, countErr := s.repo.CountTransactions(ctx, id)
	if countErr != nil || n == 0 {
		return err
	}

	return &LinkedTransactionsError{Count: n}
}
