package dashboard

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dashboard
type Repository interface {
	// ListLedgers returns every non-archived account with its transactions.
	ListLedgers(ctx context.Context) ([]Ledger, error)
}

type CurrencySource interface {
	Currency(ctx context.Context) (string, error)
}

type Service struct {
	repo     Repository
	currency CurrencySource
	now      func() time.Time
}

func NewService(repo Repository, currency CurrencySource) *Service {
	return &Service{repo: repo, currency: currency, now: time.Now}
}

// Report is a Summary labelled with the display currency.
type Report struct {
	Summary
	Currency string
}

func (s *Service) Summary(ctx context.Context) (*Report, error) {
	ledgers, err := s.repo.ListLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ledgers: %w", err)
	}

	currency, err := s.currency.Currency(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading currency: %w", err)
	}

	return &Report{
		Summary:  Summarize(ledgers, s.now()),
		Currency: currency,
	}, nil
}
