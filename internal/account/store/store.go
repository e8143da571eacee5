package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, type, nature, is_archived, created_at, transaction_count
func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var typeStr, natureStr string

	if err := s.Scan(&a.ID, &a.Name, &typeStr, &natureStr, &a.IsArchived, &a.CreatedAt, &a.TransactionCount); err != nil {
		return nil, err
	}

	a.Type = account.Type(typeStr)
	a.Nature = account.Nature(natureStr)

	return &a, nil
}

const selectAccountColumns = `
	a.id, a.name, a.type, a.nature, a.is_archived, a.created_at,
	(SELECT COUNT(*) FROM transactions t WHERE t.account_id = a.id) AS transaction_count
`

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (name, type, nature, is_archived, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Type, a.Nature, a.IsArchived).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts a WHERE a.id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts a ORDER BY a.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type = $2, nature = $3, is_archived = $4
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, a.Name, a.Type, a.Nature, a.IsArchived, a.ID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return requireAffected(res, account.ErrNotFound)
}

// DeleteAccount relies on ON DELETE CASCADE to remove the account's transactions.
func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return requireAffected(res, account.ErrNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
