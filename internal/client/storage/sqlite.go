package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/etimsclient/internal/dbx"
)

type SQLiteStore struct {
	db   *sql.DB
	tx   dbx.DBTX
	inTx bool
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, tx: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.tx.QueryRowContext(ctx, `SELECT value FROM local_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO local_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.tx.ExecContext(ctx, `DELETE FROM local_store WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.tx.QueryContext(ctx, `SELECT key, value FROM local_store`)
	if err != nil {
		return nil, fmt.Errorf("failed to list local store: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan local store row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate local store rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM local_store`); err != nil {
		return fmt.Errorf("failed to clear local store: %w", err)
	}
	return nil
}

// Batch runs fn inside a single transaction. Nested calls reuse the
// enclosing transaction.
func (s *SQLiteStore) Batch(ctx context.Context, fn func(s Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(&SQLiteStore{db: s.db, tx: tx, inTx: true})
	})
}
