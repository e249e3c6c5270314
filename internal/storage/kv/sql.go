package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/weekly/internal/migration"
)

// SQLStore implements Backend reads and writes over the kv and kv_history
// tables created by the embedded migrations.
type SQLStore struct {
	DB      *sql.DB
	Dialect migration.Dialect
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.DB == nil {
		return nil, ErrNotInitialized
	}
	var value string
	err := s.DB.QueryRowContext(ctx, s.Dialect.Bind("SELECT value FROM kv WHERE key = ?"), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts key. A changed previous value is copied to kv_history, which
// is pruned to HistoryLimit rows per key.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if s.DB == nil {
		return ErrNotInitialized
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var prev string
	err = tx.QueryRowContext(ctx, s.Dialect.Bind("SELECT value FROM kv WHERE key = ?"), key).Scan(&prev)
	switch {
	case err == nil && prev != string(value):
		if _, err := tx.ExecContext(ctx, s.Dialect.Bind("INSERT INTO kv_history (key, value, replaced_at) VALUES (?, ?, ?)"), key, prev, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record history for %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, s.Dialect.Bind(`
			DELETE FROM kv_history
			WHERE key = ? AND id NOT IN (
				SELECT id FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?
			)`), key, key, HistoryLimit); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to prune history for %s: %w", key, err)
		}
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		_ = tx.Rollback()
		return fmt.Errorf("failed to read key %s: %w", key, err)
	}

	if _, err := tx.ExecContext(ctx, s.Dialect.Bind(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		key, string(value), now); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write of %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if s.DB == nil {
		return ErrNotInitialized
	}
	if _, err := s.DB.ExecContext(ctx, s.Dialect.Bind("DELETE FROM kv WHERE key = ?"), key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// History returns up to limit previous values of key, newest first.
func (s *SQLStore) History(ctx context.Context, key string, limit int) ([]Revision, error) {
	if s.DB == nil {
		return nil, ErrNotInitialized
	}
	rows, err := s.DB.QueryContext(ctx, s.Dialect.Bind("SELECT value, replaced_at FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?"), key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", key, err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var value, replacedAt string
		if err := rows.Scan(&value, &replacedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		revisions = append(revisions, Revision{Value: []byte(value), ReplacedAt: replacedAt})
	}
	return revisions, rows.Err()
}
