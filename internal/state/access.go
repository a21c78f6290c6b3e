package state

import (
	"context"
	"fmt"
	"strconv"
)

// JobSource supplies the live view of a worker's job list. The registry
// implements it; Access compares live hashes against stored ones.
type JobSource interface {
	Count(worker string) int
	Hash(worker string) string
}

// Access is the worker-scoped façade over the KV store. It enforces the one
// cross-cutting invariant: a stored current_job_index is meaningful only
// while the stored jobs_hash matches the live hash. A registry change
// implicitly invalidates the index even though the stored value is left
// untouched until overwritten.
type Access struct {
	kv   KV
	jobs JobSource
}

func NewAccess(kv KV, jobs JobSource) *Access {
	return &Access{kv: kv, jobs: jobs}
}

// SavedHash returns the persisted jobs hash for worker, or "" if never stored.
func (a *Access) SavedHash(ctx context.Context, worker string) (string, error) {
	v, _, err := a.kv.Get(ctx, worker, KeyJobsHash)
	if err != nil {
		return "", fmt.Errorf("get saved hash: %w", err)
	}
	return v, nil
}

// SaveHash persists the jobs hash for worker.
func (a *Access) SaveHash(ctx context.Context, worker, hash string) error {
	if err := a.kv.Set(ctx, worker, KeyJobsHash, &hash); err != nil {
		return fmt.Errorf("save hash: %w", err)
	}
	return nil
}

// HashChanged reports whether the live job list differs from the one the
// stored state was written against.
func (a *Access) HashChanged(ctx context.Context, worker string) (bool, error) {
	saved, err := a.SavedHash(ctx, worker)
	if err != nil {
		return false, err
	}
	return a.jobs.Hash(worker) != saved, nil
}

// CurrentIndex returns the persisted rotation position, or nil when the
// worker has no jobs, the hash changed, nothing was stored, or the stored
// index no longer names a valid position.
func (a *Access) CurrentIndex(ctx context.Context, worker string) (*int, error) {
	n := a.jobs.Count(worker)
	if n == 0 {
		return nil, nil
	}
	changed, err := a.HashChanged(ctx, worker)
	if err != nil {
		return nil, err
	}
	if changed {
		return nil, nil
	}

	v, ok, err := a.kv.Get(ctx, worker, KeyCurrentIndex)
	if err != nil {
		return nil, fmt.Errorf("get current index: %w", err)
	}
	if !ok {
		return nil, nil
	}
	idx, err := strconv.Atoi(v)
	if err != nil || idx < 0 || idx >= n {
		return nil, nil
	}
	return &idx, nil
}

// SetCurrentIndex persists the rotation position; nil unsets it.
func (a *Access) SetCurrentIndex(ctx context.Context, worker string, idx *int) error {
	var v *string
	if idx != nil {
		s := strconv.Itoa(*idx)
		v = &s
	}
	if err := a.kv.Set(ctx, worker, KeyCurrentIndex, v); err != nil {
		return fmt.Errorf("set current index: %w", err)
	}
	return nil
}

// Pid returns the persisted owner pid for worker, or nil if unset.
func (a *Access) Pid(ctx context.Context, worker string) (*int, error) {
	v, ok, err := a.kv.Get(ctx, worker, KeyPid)
	if err != nil {
		return nil, fmt.Errorf("get pid: %w", err)
	}
	if !ok {
		return nil, nil
	}
	pid, err := strconv.Atoi(v)
	if err != nil || pid <= 0 {
		return nil, nil
	}
	return &pid, nil
}

// SetPid persists the owner pid for worker; nil unsets it.
func (a *Access) SetPid(ctx context.Context, worker string, pid *int) error {
	var v *string
	if pid != nil {
		s := strconv.Itoa(*pid)
		v = &s
	}
	if err := a.kv.Set(ctx, worker, KeyPid, v); err != nil {
		return fmt.Errorf("set pid: %w", err)
	}
	return nil
}
