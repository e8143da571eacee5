package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/networth/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateNote(ctx context.Context, id uuid.UUID, note *string) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, txs []*Transaction) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateParams is the validated create payload. Ids stay strings until
// validation so that a missing id reads as "required" rather than a parse error.
type CreateParams struct {
	AccountID   string          `json:"accountId" validate:"required,id"`
	CategoryID  string          `json:"categoryId" validate:"required,id"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Type        Type            `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Description string          `json:"description" validate:"required"`
	Note        *string         `json:"note,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

type ListFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *Type
	Search     string
	Sort       Sort
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := s.build(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) build(params CreateParams) (*Transaction, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if err := validate.Money("amount", params.Amount); err != nil {
		return nil, err
	}

	tx := &Transaction{
		AccountID:   uuid.MustParse(params.AccountID),
		CategoryID:  uuid.MustParse(params.CategoryID),
		Amount:      params.Amount,
		Type:        params.Type,
		Description: params.Description,
		Note:        normalizeNote(params.Note),
		Date:        s.now(),
	}

	if params.Date != nil && !params.Date.IsZero() {
		tx.Date = *params.Date
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	if filter.Type != nil && *filter.Type != TypeIncome && *filter.Type != TypeExpense {
		return nil, validate.Errorf("type", "type must be one of INCOME, EXPENSE")
	}

	if filter.Sort == "" {
		filter.Sort = SortDateDesc
	}

	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// UpdateNote replaces the note; an empty note clears it.
func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, note string) (*Transaction, error) {
	if err := s.repo.UpdateNote(ctx, id, normalizeNote(&note)); err != nil {
		return nil, err
	}

	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func normalizeNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}

	return note
}

type ImportResult struct {
	Imported  []*Transaction
	New       []*Transaction
	Conflicts []Conflict
}

type Conflict struct {
	Incoming *Transaction
	Existing *Transaction
}

// ImportBatch writes params unless some already exist. When duplicates are
// found nothing is written and the caller gets both the new rows and the conflicts.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	txs, err := s.buildAll(params)
	if err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(txs)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d)] = d
	}

	var (
		fresh     []*Transaction
		conflicts []Conflict
	)

	for _, tx := range txs {
		if existing, found := lookup[keyOf(tx)]; found {
			conflicts = append(conflicts, Conflict{Incoming: tx, Existing: existing})
			continue
		}

		fresh = append(fresh, tx)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: fresh, Conflicts: conflicts}, nil
	}

	if err := itx.CreateTransactions(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: fresh}, nil
}

// CreateBatch writes params in one database transaction without duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs, err := s.buildAll(params)
	if err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(txs)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func (s *Service) buildAll(params []CreateParams) ([]*Transaction, error) {
	txs := make([]*Transaction, len(params))

	for i, p := range params {
		tx, err := s.build(p)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = tx
	}

	return txs, nil
}

type dupKey struct {
	AccountID   uuid.UUID
	Date        string
	Amount      string
	Type        Type
	Description string
}

func keyOf(tx *Transaction) dupKey {
	return dupKey{
		AccountID:   tx.AccountID,
		Date:        tx.Date.Format(time.DateOnly),
		Amount:      tx.Amount.StringFixed(2),
		Type:        tx.Type,
		Description: tx.Description,
	}
}

func dateRange(txs []*Transaction) (time.Time, time.Time) {
	minDate := txs[0].Date
	maxDate := txs[0].Date

	for _, tx := range txs[1:] {
		if tx.Date.Before(minDate) {
			minDate = tx.Date
		}

		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
	}

	return minDate, maxDate
}
