package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/networth/internal/rule"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, description string) (*uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM category_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, description).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding rule: %w", err)
	}

	return &categoryID, nil
}

func (s *Store) CreateRule(ctx context.Context, r *rule.Rule) error {
	query := `
		INSERT INTO category_rules (pattern, category_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.Pattern, r.CategoryID).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return rule.ErrDuplicate
		}

		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]*rule.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pattern, category_id, created_at FROM category_rules ORDER BY pattern ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []*rule.Rule

	for rows.Next() {
		var r rule.Rule
		if err := rows.Scan(&r.ID, &r.Pattern, &r.CategoryID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		rules = append(rules, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}

	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return rule.ErrNotFound
	}

	return nil
}
