// Package scheduler implements the worker control loop: the decision logic
// for whether a worker may start, which job runs next in the circular
// rotation, how process identity is verified to prevent duplicate workers,
// and how a job-list change forces the rotation back to the top.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cronark/cronark/internal/log"
	"github.com/cronark/cronark/internal/registry"
)

// DefaultIterationDelay is the pause between loop iterations unless
// configured otherwise.
const DefaultIterationDelay = 5 * time.Second

// Job is a unit of work constructed fresh per execution and invoked exactly
// once per turn. Failure is signalled by the returned error or by panicking;
// either is contained by the loop.
type Job interface {
	Handle() error
}

// Factory constructs one Job instance. The scheduler reference is for
// diagnostics and introspection only.
type Factory func(s *Scheduler) Job

// Hooks are optional, synchronous, side-effect-only lifecycle callbacks.
// The scheduler never calls them concurrently.
type Hooks struct {
	// BeforeJob fires before a job instance is constructed.
	BeforeJob func(jobType, worker string)
	// Started fires after the pid claim, before the first job.
	Started func(worker string)
	// BeforeResume fires before each loop iteration after the first.
	BeforeResume func(worker string)
	// Stopped fires on every exit path out of Start, including aborts.
	Stopped func(worker string)
	// OnError receives every contained fault.
	OnError func(err error, worker string)
}

// Options configure a Scheduler.
type Options struct {
	// Delay is the inter-iteration pause. Zero means DefaultIterationDelay;
	// negative clamps to no delay.
	Delay time.Duration
	// MaxIterations bounds the loop for tests and --iterations runs.
	// Zero means unlimited.
	MaxIterations int
	Hooks         Hooks
	Logger        *slog.Logger
}

// Scheduler drives one worker loop at a time. Concurrency across competing
// processes is mediated solely by the pid-claim protocol against the shared
// state store; within a process there is one call, one thread of control.
type Scheduler struct {
	registry  *registry.Registry
	state     StateAccess
	proc      ProcessMonitor
	factories map[string]Factory
	hooks     Hooks
	delay     time.Duration
	maxIter   int
	logger    *slog.Logger

	mu         sync.Mutex
	running    string // worker currently looping in this instance, else ""
	currentJob string // job type currently executing, else ""
}

func New(reg *registry.Registry, st StateAccess, pm ProcessMonitor, opts Options) *Scheduler {
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultIterationDelay
	}
	if delay < 0 {
		delay = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithComponent("scheduler")
	}
	return &Scheduler{
		registry:  reg,
		state:     st,
		proc:      pm,
		factories: make(map[string]Factory),
		hooks:     opts.Hooks,
		delay:     delay,
		maxIter:   opts.MaxIterations,
		logger:    logger,
	}
}

// RegisterFactory maps a job type to its constructor. Must be called before
// Start; job types without a factory are configuration faults at dispatch
// time.
func (s *Scheduler) RegisterFactory(jobType string, f Factory) {
	s.factories[jobType] = f
}

// Registry returns the job registry, for introspection by jobs and the
// status API.
func (s *Scheduler) Registry() *registry.Registry {
	return s.registry
}

// Running returns the worker currently looping in this instance, or "".
func (s *Scheduler) Running() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CurrentJob returns the job type currently executing, or "".
func (s *Scheduler) CurrentJob() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentJob
}

// Start runs the worker loop. It is synchronous and blocks for the loop's
// duration. It never returns an error to the caller: configuration faults
// abort with a diagnostic, everything else is routed to the on-error hook.
// Cancellation of ctx is the in-process stand-in for process termination.
func (s *Scheduler) Start(ctx context.Context, worker string) {
	logger := s.logger.With("worker", worker)

	defer func() {
		if r := recover(); r != nil {
			s.fireError(fmt.Errorf("worker loop panic: %v", r), worker)
		}
		s.teardown(worker, logger)
	}()

	s.mu.Lock()
	if s.running != "" {
		s.mu.Unlock()
		logger.Warn("scheduler instance already looping", "running", s.running)
		return
	}
	s.mu.Unlock()

	if !s.registry.Registered(worker) {
		logger.Warn("worker was never registered, refusing to start")
		return
	}

	// Persist the live hash before anything else so stored rotation state
	// is tied to this job list, even when it is empty.
	hash := s.registry.Hash(worker)
	if err := s.state.SaveHash(ctx, worker, hash); err != nil {
		s.fireError(fmt.Errorf("persist jobs hash: %w", err), worker)
		return
	}
	if !s.registry.HasAny(worker) {
		logger.Info("worker has no jobs, nothing to run")
		return
	}

	active, err := s.IsActive(ctx, worker)
	if err != nil {
		s.fireError(fmt.Errorf("duplicate check: %w", err), worker)
		return
	}
	if active {
		logger.Info("another process already owns this worker, exiting")
		return
	}

	// Claim. This is check-then-act by design: the window between the
	// duplicate check above and this write is corrected on the next
	// trigger or the next ownership recheck below.
	pid := s.proc.Current()
	if err := s.state.SetPid(ctx, worker, &pid); err != nil {
		s.fireError(fmt.Errorf("claim pid: %w", err), worker)
		return
	}
	if err := s.state.SetCurrentIndex(ctx, worker, nil); err != nil {
		s.fireError(fmt.Errorf("reset rotation index: %w", err), worker)
		return
	}

	s.mu.Lock()
	s.running = worker
	s.mu.Unlock()

	logger.Info("worker started", "pid", pid, "jobs", s.registry.Count(worker), "jobs_hash", hash)
	if s.hooks.Started != nil {
		s.hooks.Started(worker)
	}

	idx, err := s.nextIndex(ctx, worker)
	if err != nil {
		s.fireError(fmt.Errorf("resolve first job: %w", err), worker)
		return
	}

	iterations := 0
	for idx != nil {
		jobType, _ := s.registry.Get(worker, *idx)
		s.handle(jobType, idx, worker)

		// Re-verify ownership. Another process overwriting the stored pid
		// is the graceful stop signal.
		owner, err := s.state.Pid(ctx, worker)
		if err != nil {
			s.fireError(fmt.Errorf("verify pid ownership: %w", err), worker)
			return
		}
		if owner == nil || *owner != pid {
			logger.Info("superseded by another process, stopping", "owner", pidValue(owner))
			return
		}

		iterations++
		if s.maxIter > 0 && iterations >= s.maxIter {
			logger.Debug("iteration ceiling reached", "iterations", iterations)
			return
		}

		idx, err = s.nextIndex(ctx, worker)
		if err != nil {
			s.fireError(fmt.Errorf("advance rotation index: %w", err), worker)
			return
		}
		if idx == nil {
			logger.Info("no next job resolvable, stopping")
			return
		}

		if s.hooks.BeforeResume != nil {
			s.hooks.BeforeResume(worker)
		}
		if !s.pause(ctx) {
			logger.Info("context cancelled during delay, stopping")
			return
		}
	}
}

// nextIndex advances the circular rotation position for worker and persists
// it. It returns nil when the worker has no jobs or the job list changed
// since the stored state was written; the call after that lands on 0.
func (s *Scheduler) nextIndex(ctx context.Context, worker string) (*int, error) {
	n := s.registry.Count(worker)
	if n == 0 {
		return nil, nil
	}
	changed, err := s.state.HashChanged(ctx, worker)
	if err != nil {
		return nil, err
	}
	if changed {
		return nil, nil
	}

	cur, err := s.state.CurrentIndex(ctx, worker)
	if err != nil {
		return nil, err
	}
	next := 0
	if cur != nil {
		next = *cur + 1
	}
	if next >= n {
		next = 0
	}
	if err := s.state.SetCurrentIndex(ctx, worker, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// handle executes one turn: construct a fresh instance of jobType, invoke
// it exactly once, and clean up regardless of outcome. Faults during
// construction or invocation are contained here; they never terminate the
// loop by themselves.
func (s *Scheduler) handle(jobType string, index *int, worker string) (ok bool) {
	if jobType == "" || index == nil {
		return false
	}
	// Defensive recheck: the registry entry could have changed between
	// resolving the index and dispatching.
	if got, exists := s.registry.Get(worker, *index); !exists || got != jobType {
		return false
	}

	defer func() {
		s.mu.Lock()
		s.currentJob = ""
		s.mu.Unlock()
		if r := recover(); r != nil {
			s.fireError(fmt.Errorf("job %s: panic: %v", jobType, r), worker)
			ok = false
		}
	}()

	if s.hooks.BeforeJob != nil {
		s.hooks.BeforeJob(jobType, worker)
	}

	factory, found := s.factories[jobType]
	if !found {
		s.logger.Warn("no factory for job type", "worker", worker, "job", jobType)
		return false
	}

	job := factory(s)
	s.mu.Lock()
	s.currentJob = jobType
	s.mu.Unlock()

	runID := uuid.NewString()
	started := time.Now()
	s.logger.Info("job started", "worker", worker, "job", jobType, "index", *index, "run_id", runID)

	if err := job.Handle(); err != nil {
		s.logger.Warn("job failed", "worker", worker, "job", jobType, "run_id", runID, "error", err)
		s.fireError(fmt.Errorf("job %s: %w", jobType, err), worker)
		return false
	}

	s.logger.Info("job completed", "worker", worker, "job", jobType, "run_id", runID,
		"duration_ms", time.Since(started).Milliseconds())
	return true
}

// IsActive reports whether another live process owns worker. Undeterminable
// script paths count as active: the bias is toward assuming a collision,
// never toward silently running two workers.
func (s *Scheduler) IsActive(ctx context.Context, worker string) (bool, error) {
	pid, err := s.state.Pid(ctx, worker)
	if err != nil {
		return false, err
	}
	if pid == nil {
		return false, nil
	}
	if !s.proc.Exists(*pid) {
		return false, nil
	}

	ownPath, err := s.proc.ScriptPath(s.proc.Current())
	if err != nil {
		return true, nil
	}
	theirPath, err := s.proc.ScriptPath(*pid)
	if err != nil {
		return true, nil
	}
	return ownPath == theirPath, nil
}

// Kill terminates the process owning worker, if any. The stored pid is
// cleared when termination succeeds or the target is already gone;
// otherwise it is left untouched and Kill reports failure.
func (s *Scheduler) Kill(ctx context.Context, worker string) (bool, error) {
	pid, err := s.state.Pid(ctx, worker)
	if err != nil {
		return false, err
	}
	if pid == nil {
		return false, nil
	}

	terminated := s.proc.Terminate(*pid)
	if !terminated && s.proc.Exists(*pid) {
		s.logger.Warn("failed to terminate worker process", "worker", worker, "pid", *pid)
		return false, nil
	}

	if err := s.state.SetPid(ctx, worker, nil); err != nil {
		return false, fmt.Errorf("clear pid: %w", err)
	}
	s.logger.Info("worker process terminated", "worker", worker, "pid", *pid)
	return true, nil
}

// KillAll applies Kill to every registered worker, ignoring individual
// failures. It returns the number of workers whose pid was cleared.
func (s *Scheduler) KillAll(ctx context.Context) int {
	killed := 0
	for _, worker := range s.registry.Workers() {
		ok, err := s.Kill(ctx, worker)
		if err != nil {
			s.logger.Warn("kill failed", "worker", worker, "error", err)
			continue
		}
		if ok {
			killed++
		}
	}
	return killed
}

// pause waits the configured inter-iteration delay. Returns false if ctx
// was cancelled during the wait.
func (s *Scheduler) pause(ctx context.Context) bool {
	if s.delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Scheduler) fireError(err error, worker string) {
	s.logger.Error("worker fault", "worker", worker, "error", err)
	if s.hooks.OnError != nil {
		s.hooks.OnError(err, worker)
	}
}

// teardown runs on every exit path out of Start. It must not raise.
func (s *Scheduler) teardown(worker string, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("stop hook panicked", "panic", r)
		}
	}()

	s.mu.Lock()
	s.running = ""
	s.currentJob = ""
	s.mu.Unlock()

	logger.Info("worker stopped")
	if s.hooks.Stopped != nil {
		s.hooks.Stopped(worker)
	}
}

func pidValue(pid *int) int {
	if pid == nil {
		return 0
	}
	return *pid
}
