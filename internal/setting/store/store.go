package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/networth/internal/setting"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", setting.ErrNotFound
		}

		return "", fmt.Errorf("getting setting %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) UpsertSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting setting %q: %w", key, err)
	}

	return nil
}
