package rule

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rule
type Repository interface {
	FindMatch(ctx context.Context, description string) (*uuid.UUID, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Pattern    string `json:"pattern" validate:"required,max=200"`
	CategoryID string `json:"categoryId" validate:"required,id"`
}

// Suggest returns the category of the longest pattern found in description,
// or nil when no rule applies.
func (s *Service) Suggest(ctx context.Context, description string) (*uuid.UUID, error) {
	if strings.TrimSpace(description) == "" {
		return nil, nil
	}

	return s.repo.FindMatch(ctx, description)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Rule, error) {
	params.Pattern = strings.TrimSpace(params.Pattern)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	r := &Rule{
		Pattern:    params.Pattern,
		CategoryID: uuid.MustParse(params.CategoryID),
	}

	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, id)
}
