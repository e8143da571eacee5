package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/networth/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var typeStr string

	if err := s.Scan(&c.ID, &c.Name, &typeStr, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Type = category.Type(typeStr)

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, type, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Type).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT id, name, type, created_at FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, filter category.ListFilter) ([]*category.Category, error) {
	query := `SELECT id, name, type, created_at FROM categories`

	var args []any

	if filter.Type != nil {
		query += ` WHERE type = $1`

		args = append(args, *filter.Type)
	}

	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, type = $2 WHERE id = $3`,
		c.Name, c.Type, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return category.ErrInUse
		}

		return fmt.Errorf("deleting category: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) CountTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}
