package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name   string  `json:"name" validate:"required"`
	Type   Type    `json:"type" validate:"required,oneof=CHECKING SAVINGS CREDIT_CARD CASH INVESTMENT FUNDING INSURANCE"`
	Nature *Nature `json:"nature,omitempty" validate:"omitempty,oneof=ASSET LIABILITY"`
}

// UpdateParams changes only the fields that are set.
type UpdateParams struct {
	Name       *string `json:"name,omitempty"`
	Type       *Type   `json:"type,omitempty" validate:"omitempty,oneof=CHECKING SAVINGS CREDIT_CARD CASH INVESTMENT FUNDING INSURANCE"`
	Nature     *Nature `json:"nature,omitempty" validate:"omitempty,oneof=ASSET LIABILITY"`
	IsArchived *bool   `json:"isArchived,omitempty"`
}

// normalize drops empty optional strings so they count as "not supplied".
func (p *CreateParams) normalize() {
	if p.Nature != nil && *p.Nature == "" {
		p.Nature = nil
	}
}

func (p *UpdateParams) normalize() {
	if p.Name != nil && *p.Name == "" {
		p.Name = nil
	}

	if p.Type != nil && *p.Type == "" {
		p.Type = nil
	}

	if p.Nature != nil && *p.Nature == "" {
		p.Nature = nil
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	params.normalize()

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	a := &Account{
		Name:   params.Name,
		Type:   params.Type,
		Nature: NatureAsset,
	}

	if params.Nature != nil {
		a.Nature = *params.Nature
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Account, error) {
	params.normalize()

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		a.Name = *params.Name
	}

	if params.Type != nil {
		a.Type = *params.Type
	}

	if params.Nature != nil {
		a.Nature = *params.Nature
	}

	if params.IsArchived != nil {
		a.IsArchived = *params.IsArchived
	}

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Delete removes the account and, through the store, all its transactions.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, id)
}
