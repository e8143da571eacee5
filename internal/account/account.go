package account

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("account not found")

// Type is the kind of account as shown to the user.
type Type string

const (
	TypeChecking   Type = "CHECKING"
	TypeSavings    Type = "SAVINGS"
	TypeCreditCard Type = "CREDIT_CARD"
	TypeCash       Type = "CASH"
	TypeInvestment Type = "INVESTMENT"
	TypeFunding    Type = "FUNDING"
	TypeInsurance  Type = "INSURANCE"
)

var Types = []Type{
	TypeChecking, TypeSavings, TypeCreditCard, TypeCash,
	TypeInvestment, TypeFunding, TypeInsurance,
}

func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}

// Nature decides the balance sign convention: assets grow with income,
// liabilities grow with expenses.
type Nature string

const (
	NatureAsset     Nature = "ASSET"
	NatureLiability Nature = "LIABILITY"
)

var Natures = []Nature{NatureAsset, NatureLiability}

func (n Nature) Valid() bool {
	return slices.Contains(Natures, n)
}

type Account struct {
	ID         uuid.UUID
	Name       string
	Type       Type
	Nature     Nature
	IsArchived bool
	CreatedAt  time.Time

	// TransactionCount is filled by listings only.
	TransactionCount int
}
