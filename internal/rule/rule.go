package rule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("rule not found")
	ErrDuplicate = errors.New("a rule with this pattern already exists")
)

// Rule assigns CategoryID to any description containing Pattern, ignoring case.
type Rule struct {
	ID         uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	CreatedAt  time.Time
}
