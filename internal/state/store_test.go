package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cronark/cronark/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "state.db")
	db, err := storage.OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func strPtr(s string) *string { return &s }

func TestStoreGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	_, ok, err := s.Get(context.Background(), "w", KeyPid)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected missing key, got a value")
	}
}

func TestStoreSetGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "w", KeyJobsHash, strPtr("abc123")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "w", KeyJobsHash)
	if err != nil || !ok {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if v != "abc123" {
		t.Fatalf("expected abc123, got %q", v)
	}

	// Overwrite is last-writer-wins.
	if err := s.Set(ctx, "w", KeyJobsHash, strPtr("def456")); err != nil {
		t.Fatalf("Set (2): %v", err)
	}
	v, _, _ = s.Get(ctx, "w", KeyJobsHash)
	if v != "def456" {
		t.Fatalf("expected def456, got %q", v)
	}
}

func TestStoreSetNilRemovesKey(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "w", KeyPid, strPtr("42")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "w", KeyPid, nil); err != nil {
		t.Fatalf("Set nil: %v", err)
	}
	_, ok, err := s.Get(ctx, "w", KeyPid)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected key removed")
	}
}

func TestStoreWorkerScopesAreIsolated(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "w1", KeyCurrentIndex, strPtr("1")); err != nil {
		t.Fatalf("Set w1: %v", err)
	}
	if err := s.Set(ctx, "w2", KeyCurrentIndex, strPtr("7")); err != nil {
		t.Fatalf("Set w2: %v", err)
	}
	if err := s.Set(ctx, "", KeyJobsHash, strPtr("global")); err != nil {
		t.Fatalf("Set global: %v", err)
	}

	v1, _, _ := s.Get(ctx, "w1", KeyCurrentIndex)
	v2, _, _ := s.Get(ctx, "w2", KeyCurrentIndex)
	if v1 != "1" || v2 != "7" {
		t.Fatalf("scopes leaked: w1=%q w2=%q", v1, v2)
	}

	workers, err := s.Workers(ctx)
	if err != nil {
		t.Fatalf("Workers: %v", err)
	}
	if len(workers) != 2 || workers[0] != "w1" || workers[1] != "w2" {
		t.Fatalf("unexpected workers: %v", workers)
	}
}
