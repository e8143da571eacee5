package cgd

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type amountMode int

const (
	// One signed column, e.g. "Montante" = "-10,00".
	amountSingle amountMode = iota
	// Separate "Débito" and "Crédito" columns holding magnitudes.
	amountSplit
)

// Profile is the column layout of one CGD export format.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string
}

func (p Profile) requiredCols() []string {
	if p.AmountMode == amountSplit {
		return []string{p.DateCol, p.DescCol, p.DebitCol, p.CreditCol}
	}

	return []string{p.DateCol, p.DescCol, p.AmountCol}
}

// amount returns the row's magnitude and direction. Rows with no usable or
// a zero amount report false.
func (p Profile) amount(cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
	if p.AmountMode == amountSingle {
		d, ok := cellAmount(row, cols[p.AmountCol])
		if !ok {
			return decimal.Zero, "", false
		}

		if d.IsNegative() {
			return d.Neg(), transaction.TypeExpense, true
		}

		return d, transaction.TypeIncome, true
	}

	if d, ok := cellAmount(row, cols[p.DebitCol]); ok {
		return d.Abs(), transaction.TypeExpense, true
	}

	if d, ok := cellAmount(row, cols[p.CreditCol]); ok {
		return d.Abs(), transaction.TypeIncome, true
	}

	return decimal.Zero, "", false
}

func cellAmount(row []string, idx int) (decimal.Decimal, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseEuropeanAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

// Tried in order; the card layout goes first since its date column name is
// the least specific.
var profiles = []Profile{
	{
		Name:       "cartão",
		DateCol:    "Data",
		DescCol:    "Descrição",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "extrato",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Movimento",
	},
	{
		Name:       "conta",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Montante",
	},
}
