package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lustraclean/vitrine/internal/store"
)

// Compile-time interface guard.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store backed by SQLite, so cached catalog loads
// survive process restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore and runs the catalog_cache migration.
func NewSQLiteStore(ctx context.Context, st *store.SQLiteStore) (*SQLiteStore, error) {
	if err := st.Migrate(ctx, "cache", cacheMigrations); err != nil {
		return nil, fmt.Errorf("cache migrations: %w", err)
	}
	return &SQLiteStore{db: st.DB()}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM catalog_cache WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get cache %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_cache (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set cache %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM catalog_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache %q: %w", key, err)
	}
	return nil
}

// cacheMigrations defines the database schema for catalog_cache.
var cacheMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create catalog_cache table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE catalog_cache (
					key        TEXT PRIMARY KEY,
					value      TEXT NOT NULL,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`)
			return err
		},
	},
}
