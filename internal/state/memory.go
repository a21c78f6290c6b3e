package state

import (
	"context"
	"sync"
)

// MemKV is an in-memory KV used by tests and by embedders that don't need
// cross-process durability. Safe for concurrent use.
type MemKV struct {
	mu sync.Mutex
	m  map[[2]string]string
}

func NewMemKV() *MemKV {
	return &MemKV{m: make(map[[2]string]string)}
}

func (s *MemKV) Get(_ context.Context, worker, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[[2]string{worker, key}]
	return v, ok, nil
}

func (s *MemKV) Set(_ context.Context, worker, key string, value *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		delete(s.m, [2]string{worker, key})
		return nil
	}
	s.m[[2]string{worker, key}] = *value
	return nil
}
