// Package registry holds the in-memory mapping of workers to their ordered
// job-type lists, plus the content hash used for change detection. The
// registry is never persisted; it is rebuilt by registration calls on every
// process start, and the hash is what ties persisted rotation state to a
// particular job list.
package registry

import (
	"encoding/binary"
	"encoding/hex"
	"sort"
	"sync"

	"github.com/zeebo/blake3"
)

// Registry maps worker names to ordered job-type sequences. Duplicates are
// allowed; list order is execution order. Safe for concurrent reads while
// the status API is serving.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string][]string
}

func New() *Registry {
	return &Registry{jobs: make(map[string][]string)}
}

// Register creates an empty job list for worker. Idempotent: registering an
// existing worker leaves its list untouched.
func (r *Registry) Register(worker string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[worker]; !ok {
		r.jobs[worker] = []string{}
	}
}

// Registered reports whether worker has been registered, even with an empty
// job list.
func (r *Registry) Registered(worker string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.jobs[worker]
	return ok
}

// Add appends jobType to worker's list, registering the worker if needed.
func (r *Registry) Add(worker, jobType string) {
	r.AddAt(worker, jobType, -1)
}

// AddAt inserts jobType at the 0-based position, shifting later entries
// right. An out-of-range position (negative or past the end) appends; it
// never errors.
func (r *Registry) AddAt(worker, jobType string, position int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.jobs[worker]
	if position < 0 || position >= len(list) {
		r.jobs[worker] = append(list, jobType)
		return
	}
	list = append(list, "")
	copy(list[position+1:], list[position:])
	list[position] = jobType
	r.jobs[worker] = list
}

// Get returns the job type at position for worker. ok is false for an
// unknown worker and for an out-of-range position alike.
func (r *Registry) Get(worker string, position int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.jobs[worker]
	if position < 0 || position >= len(list) {
		return "", false
	}
	return list[position], true
}

// Jobs returns a copy of worker's ordered job list.
func (r *Registry) Jobs(worker string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.jobs[worker]...)
}

// Count returns the number of jobs for worker, or across all workers when
// worker is empty.
func (r *Registry) Count(worker string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if worker != "" {
		return len(r.jobs[worker])
	}
	total := 0
	for _, list := range r.jobs {
		total += len(list)
	}
	return total
}

// HasAny reports whether worker (or any worker, when empty) has jobs.
func (r *Registry) HasAny(worker string) bool {
	return r.Count(worker) > 0
}

// Workers returns all registered worker names, sorted.
func (r *Registry) Workers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hash returns a stable BLAKE3 fingerprint of worker's ordered job list, or
// of the whole registry grouped by worker when worker is empty. Any
// insertion, removal, or reordering changes it; identical sequences
// reproduce it across restarts. Change detection only, not security.
func (r *Registry) Hash(worker string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := blake3.New()
	if worker != "" {
		hashList(h, r.jobs[worker])
	} else {
		names := make([]string, 0, len(r.jobs))
		for name := range r.jobs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			hashString(h, name)
			hashList(h, r.jobs[name])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Length-prefixed writes keep ["ab","c"] and ["a","bc"] distinct.
func hashList(h *blake3.Hasher, list []string) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(list)))
	_, _ = h.Write(buf[:n])
	for _, item := range list {
		hashString(h, item)
	}
}

func hashString(h *blake3.Hasher, s string) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(s)))
	_, _ = h.Write(buf[:n])
	_, _ = h.Write([]byte(s))
}
