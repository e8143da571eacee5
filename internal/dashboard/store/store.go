package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListLedgers reads active accounts and their transactions in two scans.
func (s *Store) ListLedgers(ctx context.Context) ([]dashboard.Ledger, error) {
	accounts, err := s.activeAccounts(ctx)
	if err != nil {
		return nil, err
	}

	ledgers := make([]dashboard.Ledger, len(accounts))
	index := make(map[uuid.UUID]int, len(accounts))

	for i, a := range accounts {
		ledgers[i] = dashboard.Ledger{Account: a}
		index[a.ID] = i
	}

	query := `
		SELECT t.id, t.account_id, t.category_id, t.amount, t.type, t.description, t.date, t.created_at
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		WHERE a.is_archived = FALSE
		ORDER BY t.date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing ledger transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tx      transaction.Transaction
			typeStr string
		)

		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.CategoryID, &tx.Amount, &typeStr, &tx.Description, &tx.Date, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger transaction: %w", err)
		}

		tx.Type = transaction.Type(typeStr)

		i, ok := index[tx.AccountID]
		if !ok {
			// Account created between the two scans.
			continue
		}

		ledgers[i].Transactions = append(ledgers[i].Transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger transactions: %w", err)
	}

	for i := range ledgers {
		ledgers[i].Account.TransactionCount = len(ledgers[i].Transactions)
	}

	return ledgers, nil
}

func (s *Store) activeAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `
		SELECT id, name, type, nature, is_archived, created_at
		FROM accounts
		WHERE is_archived = FALSE
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing ledger accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		var (
			a                  account.Account
			typeStr, natureStr string
		)

		if err := rows.Scan(&a.ID, &a.Name, &typeStr, &natureStr, &a.IsArchived, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger account: %w", err)
		}

		a.Type = account.Type(typeStr)
		a.Nature = account.Nature(natureStr)
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger accounts: %w", err)
	}

	return accounts, nil
}
