package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/networth/internal/transaction"
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

// Expected column order: id, account_id, category_id, amount, type, description, note, date, created_at, account_name, category_name
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var (
		typeStr string
		note    sql.NullString
	)

	if err := s.Scan(
		&tx.ID, &tx.AccountID, &tx.CategoryID, &tx.Amount, &typeStr, &tx.Description, &note,
		&tx.Date, &tx.CreatedAt, &tx.AccountName, &tx.CategoryName,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	if note.Valid {
		tx.Note = &note.String
	}

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.account_id, t.category_id, t.amount, t.type, t.description, t.note,
	t.date, t.created_at, a.name AS account_name, c.name AS category_name
`

const fromTransactions = `
	FROM transactions t
	JOIN accounts a ON t.account_id = a.id
	JOIN categories c ON t.category_id = c.id
`

var orderBy = map[transaction.Sort]string{
	transaction.SortDateDesc:   "t.date DESC, t.created_at DESC",
	transaction.SortDateAsc:    "t.date ASC, t.created_at ASC",
	transaction.SortAmountDesc: "t.amount DESC, t.date DESC",
	transaction.SortAmountAsc:  "t.amount ASC, t.date DESC",
}

const insertTransaction = `
	INSERT INTO transactions (account_id, category_id, amount, type, description, note, date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING id, created_at
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, q queryRower, tx *transaction.Transaction) error {
	err := q.QueryRowContext(ctx, insertTransaction,
		tx.AccountID,
		tx.CategoryID,
		tx.Amount,
		tx.Type,
		tx.Description,
		tx.Note,
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return transaction.ErrUnknownReference
	}

	return err
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := insert(ctx, s.db, tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func listQuery(filter transaction.ListFilter) (string, []any) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(` AND t.description ILIKE $%d ESCAPE '\'`, argIdx)

		args = append(args, likePattern(filter.Search))
	}

	order, ok := orderBy[filter.Sort]
	if !ok {
		order = orderBy[transaction.SortDateDesc]
	}

	return query + " ORDER BY " + order, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s literally anywhere in the column.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func collect(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateNote(ctx context.Context, id uuid.UUID, note *string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE transactions SET note = $1 WHERE id = $2`, note, id)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport serializes concurrent imports over the same date range.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(minDate, maxDate)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

type lookupKey struct {
	AccountID   uuid.UUID
	Date        string
	Amount      string
	Type        transaction.Type
	Description string
}

func keyOf(tx *transaction.Transaction) lookupKey {
	return lookupKey{
		AccountID:   tx.AccountID,
		Date:        tx.Date.Format(time.DateOnly),
		Amount:      tx.Amount.StringFixed(2),
		Type:        tx.Type,
		Description: tx.Description,
	}
}

// FindDuplicates returns stored transactions matching any incoming one on
// account, day, amount, type and description.
func (itx *importTx) FindDuplicates(ctx context.Context, txs []*transaction.Transaction) ([]*transaction.Transaction, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	minDate := txs[0].Date
	maxDate := txs[0].Date
	keySet := make(map[lookupKey]struct{}, len(txs))
	accounts := make(map[uuid.UUID]struct{})

	for _, tx := range txs {
		if tx.Date.Before(minDate) {
			minDate = tx.Date
		}

		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}

		keySet[keyOf(tx)] = struct{}{}
		accounts[tx.AccountID] = struct{}{}
	}

	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id.String())
	}

	// Widen to whole days so stored timestamps on the boundary dates match.
	start := time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, minDate.Location())
	end := time.Date(maxDate.Year(), maxDate.Month(), maxDate.Day(), 0, 0, 0, 0, maxDate.Location()).AddDate(0, 0, 1)

	query := `SELECT ` + selectTransactionColumns + fromTransactions + `
		WHERE t.account_id = ANY($1::uuid[]) AND t.date >= $2 AND t.date < $3
		ORDER BY t.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	candidates, err := collect(rows)
	if err != nil {
		return nil, err
	}

	var duplicates []*transaction.Transaction

	for _, tx := range candidates {
		if _, found := keySet[keyOf(tx)]; found {
			duplicates = append(duplicates, tx)
		}
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := insert(ctx, itx.tx, tx); err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
