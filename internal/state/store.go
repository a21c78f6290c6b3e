// Package state persists per-worker key/value state and exposes the
// worker-scoped accessors the scheduler core consumes.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Keys stored per worker. Everything the loop needs to survive a restart
// lives under these three keys.
const (
	KeyJobsHash     = "jobs_hash"
	KeyCurrentIndex = "current_index"
	KeyPid          = "pid"
)

// KV is the narrow key/value contract the rest of the system consumes.
// worker scopes keys; the empty worker is the global scope. Set with a nil
// value removes the key. Writes are last-writer-wins.
type KV interface {
	Get(ctx context.Context, worker, key string) (string, bool, error)
	Set(ctx context.Context, worker, key string, value *string) error
}

// Store is the SQLite-backed KV implementation.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored value for (worker, key), or ok=false if unset.
func (s *Store) Get(ctx context.Context, worker, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("state key is empty")
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM worker_state WHERE worker = ? AND key = ?;",
		worker, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read worker state: %w", err)
	}
	return value, true, nil
}

// Set upserts (worker, key) to value, or deletes the key when value is nil.
func (s *Store) Set(ctx context.Context, worker, key string, value *string) error {
	if key == "" {
		return fmt.Errorf("state key is empty")
	}

	if value == nil {
		_, err := s.db.ExecContext(ctx,
			"DELETE FROM worker_state WHERE worker = ? AND key = ?;",
			worker, key)
		if err != nil {
			return fmt.Errorf("delete worker state: %w", err)
		}
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO worker_state(worker, key, value, updated_at)
VALUES(?, ?, ?, ?)
ON CONFLICT(worker, key) DO UPDATE SET
  value = excluded.value,
  updated_at = excluded.updated_at;
`, worker, key, *value, now)
	if err != nil {
		return fmt.Errorf("upsert worker state: %w", err)
	}
	return nil
}

// Workers returns the distinct workers with any persisted state, sorted.
func (s *Store) Workers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT worker FROM worker_state WHERE worker != '' ORDER BY worker;")
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var workers []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}
