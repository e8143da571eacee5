package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrUnknownReference = errors.New("account or category does not exist")
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Sort orders transaction listings.
type Sort string

const (
	SortDateDesc   Sort = "date_desc"
	SortDateAsc    Sort = "date_asc"
	SortAmountDesc Sort = "amount_desc"
	SortAmountAsc  Sort = "amount_asc"
)

// ParseSort falls back to newest first for unknown values.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortDateAsc, SortAmountDesc, SortAmountAsc:
		return Sort(s)
	}

	return SortDateDesc
}

// Transaction represents a financial transaction owned by an account.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal // Non-negative magnitude; Type carries the direction
	Type        Type
	Description string
	Note        *string
	Date        time.Time // Effective date, used for all month bucketing
	CreatedAt   time.Time

	AccountName  string // Loaded via JOIN
	CategoryName string // Loaded via JOIN
}

// Signed returns the amount as it moves money: positive for income.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}
