package scheduler

import "context"

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mocks github.com/cronark/cronark/internal/scheduler StateAccess,ProcessMonitor

// StateAccess is the worker-scoped persisted-state contract the scheduler
// consumes. state.Access implements it over the shared key/value store.
// Nil pointers mean "unset" throughout.
type StateAccess interface {
	SavedHash(ctx context.Context, worker string) (string, error)
	SaveHash(ctx context.Context, worker, hash string) error
	HashChanged(ctx context.Context, worker string) (bool, error)
	CurrentIndex(ctx context.Context, worker string) (*int, error)
	SetCurrentIndex(ctx context.Context, worker string, idx *int) error
	Pid(ctx context.Context, worker string) (*int, error)
	SetPid(ctx context.Context, worker string, pid *int) error
}

// ProcessMonitor is the OS process introspection contract. proc.Monitor
// implements it.
type ProcessMonitor interface {
	Current() int
	Exists(pid int) bool
	ScriptPath(pid int) (string, error)
	Terminate(pid int) bool
}
