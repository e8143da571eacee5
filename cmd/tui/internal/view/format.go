package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders money with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney prefixes FormatAmount with the display currency.
func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + " " + FormatAmount(d)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
