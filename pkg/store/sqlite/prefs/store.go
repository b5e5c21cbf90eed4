// Package prefs persists per-user view preferences through a plain
// key-value interface so callers never reach for a global store.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store interface {
	Get(ctx context.Context, user, key string) (string, bool, error)
	Set(ctx context.Context, user, key, value string) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Get(ctx context.Context, user, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE user = ? AND key = ?`, user, key).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query preference %s/%s: %w", user, key, err)
	}
	return value, true, nil
}

func (s *defaultStore) Set(ctx context.Context, user, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (user, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT (user, key) DO UPDATE SET value = excluded.value`,
		user, key, value)
	if err != nil {
		return fmt.Errorf("set preference %s/%s: %w", user, key, err)
	}
	return nil
}
