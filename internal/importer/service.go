package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/importer/cgd"
	"github.com/MrJamesThe3rd/networth/internal/importer/generic"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=suggester_mock.go -package=importer
type Suggester interface {
	Suggest(ctx context.Context, description string) (*uuid.UUID, error)
}

type Service struct {
	parsers map[Bank]Parser
	rules   Suggester
}

func NewService(rules Suggester) *Service {
	return &Service{
		parsers: map[Bank]Parser{
			BankCGD:     cgd.NewParser(),
			BankGeneric: generic.NewParser(),
		},
		rules: rules,
	}
}

// Target says where imported rows land. Rows no rule matches fall back to
// the income or expense category by direction.
type Target struct {
	AccountID         uuid.UUID
	IncomeCategoryID  uuid.UUID
	ExpenseCategoryID uuid.UUID
}

func (s *Service) Import(ctx context.Context, bank Bank, r io.Reader, target Target) ([]transaction.CreateParams, error) {
	parser, ok := s.parsers[bank]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	params, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s statement: %w", ErrUnreadable, bank, err)
	}

	for i := range params {
		p := &params[i]
		p.AccountID = target.AccountID.String()

		categoryID, err := s.rules.Suggest(ctx, p.Description)
		if err != nil {
			return nil, fmt.Errorf("suggest category: %w", err)
		}

		switch {
		case categoryID != nil:
			p.CategoryID = categoryID.String()
		case p.Type == transaction.TypeIncome:
			p.CategoryID = target.IncomeCategoryID.String()
		default:
			p.CategoryID = target.ExpenseCategoryID.String()
		}
	}

	return params, nil
}
