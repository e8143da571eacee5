package category

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("category not found")
	// ErrInUse is returned by the store when a reference blocks the delete.
	ErrInUse = errors.New("category is in use")
)

// Type mirrors the transaction types a category can classify.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

type Category struct {
	ID        uuid.UUID
	Name      string
	Type      Type
	CreatedAt time.Time
}

// LinkedTransactionsError rejects deleting a category that transactions still reference.
type LinkedTransactionsError struct {
	Count int
}

func (e *LinkedTransactionsError) Error() string {
	noun := "transactions"
	if e.Count == 1 {
		noun = "transaction"
	}

	return fmt.Sprintf("Cannot delete: this category has %d linked %s.", e.Count, noun)
}
