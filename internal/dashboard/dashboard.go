// Package dashboard derives balances, net worth and monthly cash flow from
// accounts and their transactions.
package dashboard

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

// Ledger is one account together with every transaction it owns.
type Ledger struct {
	Account      *account.Account
	Transactions []*transaction.Transaction
}

type AccountBalance struct {
	ID      uuid.UUID
	Name    string
	Type    account.Type
	Nature  account.Nature
	Balance decimal.Decimal
}

type MonthlyNetWorth struct {
	Month    string // YYYY-MM
	NetWorth decimal.Decimal
}

type Summary struct {
	TotalNetWorth   decimal.Decimal
	MonthlyIncome   decimal.Decimal
	MonthlyExpense  decimal.Decimal
	NetCashFlow     decimal.Decimal
	AccountBalances []AccountBalance
	NetWorthHistory []MonthlyNetWorth
}

const monthLayout = "2006-01"

// Summarize is pure: the same ledgers and now always give the same summary.
// The current month starts on the first day of now's month in now's location.
func Summarize(ledgers []Ledger, now time.Time) Summary {
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	var (
		assets, liabilities decimal.Decimal
		income, expense     decimal.Decimal
	)

	balances := make([]AccountBalance, 0, len(ledgers))
	deltas := make(map[string]decimal.Decimal)

	for _, l := range ledgers {
		balance := Balance(l.Account.Nature, l.Transactions)

		balances = append(balances, AccountBalance{
			ID:      l.Account.ID,
			Name:    l.Account.Name,
			Type:    l.Account.Type,
			Nature:  l.Account.Nature,
			Balance: balance,
		})

		if l.Account.Nature == account.NatureLiability {
			liabilities = liabilities.Add(balance)
		} else {
			assets = assets.Add(balance)
		}

		for _, tx := range l.Transactions {
			date := tx.Date.In(loc)

			if !date.Before(monthStart) {
				if tx.Type == transaction.TypeIncome {
					income = income.Add(tx.Amount)
				} else {
					expense = expense.Add(tx.Amount)
				}
			}

			key := date.Format(monthLayout)
			deltas[key] = deltas[key].Add(tx.Signed())
		}
	}

	return Summary{
		TotalNetWorth:   assets.Sub(liabilities),
		MonthlyIncome:   income,
		MonthlyExpense:  expense,
		NetCashFlow:     income.Sub(expense),
		AccountBalances: balances,
		NetWorthHistory: history(deltas),
	}
}

// Balance is income minus expense for assets and the reverse for liabilities,
// so an outstanding debt is positive.
func Balance(nature account.Nature, txs []*transaction.Transaction) decimal.Decimal {
	var in, out decimal.Decimal

	for _, tx := range txs {
		if tx.Type == transaction.TypeIncome {
			in = in.Add(tx.Amount)
		} else {
			out = out.Add(tx.Amount)
		}
	}

	if nature == account.NatureLiability {
		return out.Sub(in)
	}

	return in.Sub(out)
}

func history(deltas map[string]decimal.Decimal) []MonthlyNetWorth {
	months := make([]string, 0, len(deltas))
	for m := range deltas {
		months = append(months, m)
	}

	sort.Strings(months)

	out := make([]MonthlyNetWorth, 0, len(months))

	var running decimal.Decimal

	for _, m := range months {
		running = running.Add(deltas[m])
		out = append(out, MonthlyNetWorth{Month: m, NetWorth: running})
	}

	return out
}
