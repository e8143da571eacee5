package setting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/networth/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=setting
type Repository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	UpsertSetting(ctx context.Context, key, value string) error
}

type Service struct {
	repo            Repository
	defaultCurrency string
}

func NewService(repo Repository, defaultCurrency string) *Service {
	return &Service{repo: repo, defaultCurrency: defaultCurrency}
}

type UpdateParams struct {
	Currency string `json:"currency" validate:"required"`
}

// Get returns the stored settings, persisting the default currency the first
// time it is asked for.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	currency, err := s.repo.GetSetting(ctx, KeyCurrency)
	if err == nil {
		return &Settings{Currency: currency}, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.repo.UpsertSetting(ctx, KeyCurrency, s.defaultCurrency); err != nil {
		return nil, fmt.Errorf("storing default currency: %w", err)
	}

	return &Settings{Currency: s.defaultCurrency}, nil
}

// Currency is Get narrowed to the display currency.
func (s *Service) Currency(ctx context.Context) (string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return "", err
	}

	return settings.Currency, nil
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (*Settings, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	// Whitespace-only labels are empty; anything else is stored as sent.
	if strings.TrimSpace(params.Currency) == "" {
		return nil, validate.Errorf("currency", "currency is required")
	}

	if err := s.repo.UpsertSetting(ctx, KeyCurrency, params.Currency); err != nil {
		return nil, err
	}

	return &Settings{Currency: params.Currency}, nil
}
