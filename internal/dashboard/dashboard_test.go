package dashboard_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func tx(typ transaction.Type, amount string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{ID: uuid.New(), Type: typ, Amount: dec(amount), Date: date}
}

func ledger(name string, nature account.Nature, txs ...*transaction.Transaction) dashboard.Ledger {
	return dashboard.Ledger{
		Account: &account.Account{
			ID:     uuid.New(),
			Name:   name,
			Type:   account.TypeChecking,
			Nature: nature,
		},
		Transactions: txs,
	}
}

func TestSummarize_Balances(t *testing.T) {
	now := day(2024, 6, 15)

	ledgers := []dashboard.Ledger{
		ledger("A", account.NatureAsset,
			tx(transaction.TypeIncome, "100", day(2024, 1, 10)),
			tx(transaction.TypeExpense, "30", day(2024, 2, 10)),
		),
		ledger("B", account.NatureLiability,
			tx(transaction.TypeExpense, "50", day(2024, 1, 20)),
			tx(transaction.TypeIncome, "20", day(2024, 2, 20)),
		),
	}

	got := dashboard.Summarize(ledgers, now)

	require.Len(t, got.AccountBalances, 2)
	assert.Equal(t, "A", got.AccountBalances[0].Name)
	assert.True(t, got.AccountBalances[0].Balance.Equal(dec("70")))
	assert.Equal(t, account.NatureLiability, got.AccountBalances[1].Nature)
	assert.True(t, got.AccountBalances[1].Balance.Equal(dec("30")))
	assert.True(t, got.TotalNetWorth.Equal(dec("40")), got.TotalNetWorth.String())
}

func TestSummarize_History(t *testing.T) {
	now := day(2024, 3, 31)

	ledgers := []dashboard.Ledger{
		ledger("Main", account.NatureAsset,
			tx(transaction.TypeExpense, "5", day(2024, 3, 2)),
			tx(transaction.TypeIncome, "100", day(2024, 1, 5)),
			tx(transaction.TypeExpense, "20", day(2024, 2, 5)),
			tx(transaction.TypeIncome, "10", day(2024, 3, 1)),
		),
	}

	got := dashboard.Summarize(ledgers, now)

	require.Len(t, got.NetWorthHistory, 3)

	want := []struct {
		month string
		worth string
	}{
		{"2024-01", "100"},
		{"2024-02", "80"},
		{"2024-03", "85"},
	}

	for i, w := range want {
		assert.Equal(t, w.month, got.NetWorthHistory[i].Month)
		assert.True(t, got.NetWorthHistory[i].NetWorth.Equal(dec(w.worth)), got.NetWorthHistory[i].NetWorth.String())
	}
}

func TestSummarize_HistoryEndsAtNetIncome(t *testing.T) {
	ledgers := []dashboard.Ledger{
		ledger("Checking", account.NatureAsset,
			tx(transaction.TypeIncome, "1200.10", day(2023, 11, 1)),
			tx(transaction.TypeExpense, "99.99", day(2023, 12, 24)),
		),
		ledger("Card", account.NatureLiability,
			tx(transaction.TypeExpense, "300", day(2024, 1, 3)),
			tx(transaction.TypeIncome, "150", day(2024, 1, 30)),
		),
	}

	got := dashboard.Summarize(ledgers, day(2024, 2, 1))

	// Income minus expense across every account, regardless of nature.
	last := got.NetWorthHistory[len(got.NetWorthHistory)-1]
	assert.True(t, last.NetWorth.Equal(dec("950.11")), last.NetWorth.String())
}

func TestSummarize_Monthly(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	ledgers := []dashboard.Ledger{
		ledger("Main", account.NatureAsset,
			tx(transaction.TypeIncome, "2500", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
			tx(transaction.TypeExpense, "40.25", day(2024, 5, 3)),
			tx(transaction.TypeExpense, "999", time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)),
		),
		ledger("Card", account.NatureLiability,
			tx(transaction.TypeExpense, "59.75", day(2024, 5, 19)),
		),
	}

	got := dashboard.Summarize(ledgers, now)

	assert.True(t, got.MonthlyIncome.Equal(dec("2500")))
	assert.True(t, got.MonthlyExpense.Equal(dec("100")), got.MonthlyExpense.String())
	assert.True(t, got.NetCashFlow.Equal(dec("2400")))
}

func TestSummarize_MonthStartFollowsLocation(t *testing.T) {
	lisbon := time.FixedZone("WEST", 60*60)
	now := time.Date(2024, 7, 10, 0, 0, 0, 0, lisbon)

	// 23:30 UTC on June 30 is already July 1 at UTC+1.
	ledgers := []dashboard.Ledger{
		ledger("Main", account.NatureAsset,
			tx(transaction.TypeIncome, "10", time.Date(2024, 6, 30, 23, 30, 0, 0, time.UTC)),
		),
	}

	got := dashboard.Summarize(ledgers, now)

	assert.True(t, got.MonthlyIncome.Equal(dec("10")))
	assert.Equal(t, "2024-07", got.NetWorthHistory[0].Month)
}

func TestSummarize_Empty(t *testing.T) {
	got := dashboard.Summarize(nil, day(2024, 1, 1))

	assert.True(t, got.TotalNetWorth.IsZero())
	assert.True(t, got.MonthlyIncome.IsZero())
	assert.True(t, got.MonthlyExpense.IsZero())
	assert.True(t, got.NetCashFlow.IsZero())
	assert.NotNil(t, got.AccountBalances)
	assert.Empty(t, got.AccountBalances)
	assert.NotNil(t, got.NetWorthHistory)
	assert.Empty(t, got.NetWorthHistory)
}

func TestSummarize_AccountWithoutTransactions(t *testing.T) {
	got := dashboard.Summarize([]dashboard.Ledger{ledger("Fresh", account.NatureLiability)}, day(2024, 1, 1))

	require.Len(t, got.AccountBalances, 1)
	assert.True(t, got.AccountBalances[0].Balance.IsZero())
	assert.True(t, got.TotalNetWorth.IsZero())
}

func TestSummarize_Idempotent(t *testing.T) {
	now := day(2024, 2, 14)

	ledgers := []dashboard.Ledger{
		ledger("Main", account.NatureAsset,
			tx(transaction.TypeIncome, "10.10", day(2024, 1, 1)),
			tx(transaction.TypeExpense, "0.20", day(2024, 2, 1)),
		),
	}

	assert.Equal(t, dashboard.Summarize(ledgers, now), dashboard.Summarize(ledgers, now))
}

func TestBalance(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, "0.10", day(2024, 1, 1)),
		tx(transaction.TypeIncome, "0.20", day(2024, 1, 1)),
		tx(transaction.TypeExpense, "0.05", day(2024, 1, 1)),
	}

	assert.True(t, dashboard.Balance(account.NatureAsset, txs).Equal(dec("0.25")))
	assert.True(t, dashboard.Balance(account.NatureLiability, txs).Equal(dec("-0.25")))
}
