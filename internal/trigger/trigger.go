// Package trigger fires worker starts on cron schedules for deployments
// that prefer a resident daemon over external cron entries. The worker
// loop's own duplicate-prevention protocol makes overlapping triggers safe;
// the per-worker TryLock here just avoids burning goroutines on ticks that
// would abort anyway.
package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/cronark/cronark/internal/config"
)

// Runner starts one worker loop. A fresh Runner is built per tick so each
// invocation mirrors an external `cronark worker start` process.
type Runner interface {
	Start(ctx context.Context, worker string)
}

// RunnerFactory builds the Runner for one worker's tick.
type RunnerFactory func(worker string) Runner

// Daemon schedules worker starts from config cron expressions.
type Daemon struct {
	mu        sync.Mutex
	cron      *cron.Cron
	cfg       *config.Config
	newRunner RunnerFactory
	locks     map[string]*sync.Mutex
	logger    *slog.Logger
	cancel    context.CancelFunc
}

func New(cfg *config.Config, newRunner RunnerFactory, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		cfg:       cfg,
		newRunner: newRunner,
		locks:     make(map[string]*sync.Mutex),
		logger:    logger,
	}
}

// Start registers every scheduled worker and begins firing. Returns an
// error if any schedule expression is invalid.
func (d *Daemon) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	d.cron = cron.New(cron.WithParser(parser))

	scheduled := 0
	for name, wc := range d.cfg.Workers {
		if wc.Schedule == "" {
			continue
		}
		worker := name
		lock := &sync.Mutex{}
		d.locks[worker] = lock

		_, err := d.cron.AddFunc(wc.Schedule, func() {
			// If the previous tick's loop is still running in this
			// process, skip; the pid check would refuse it anyway.
			if !lock.TryLock() {
				d.logger.Debug("worker still looping, skipping tick", "worker", worker)
				return
			}
			defer lock.Unlock()

			d.logger.Info("trigger fired", "worker", worker)
			d.newRunner(worker).Start(ctx, worker)
		})
		if err != nil {
			cancel()
			return fmt.Errorf("invalid schedule for worker %q: %w", worker, err)
		}
		scheduled++
	}

	d.cron.Start()
	d.logger.Info("trigger daemon started", "workers", scheduled)
	return nil
}

// Stop cancels running loops and waits for in-flight ticks to finish.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
	d.logger.Info("trigger daemon stopped")
}
