// Package job provides the built-in job implementations the CLI wires into
// the scheduler. The scheduler core is agnostic; anything satisfying
// scheduler.Job works.
package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/cronark/cronark/internal/config"
	"github.com/cronark/cronark/internal/log"
	"github.com/cronark/cronark/internal/scheduler"
)

// maxStderrBytes caps the amount of stderr captured from command execution.
const maxStderrBytes = 64 * 1024

// ExecJob runs a configured shell command once per turn.
type ExecJob struct {
	sched   *scheduler.Scheduler
	name    string
	command string
	workdir string
	timeout time.Duration
	logger  *slog.Logger
}

// ExecFactory builds a scheduler factory for one configured job. Each turn
// constructs a fresh ExecJob.
func ExecFactory(jc config.JobConf) scheduler.Factory {
	return func(s *scheduler.Scheduler) scheduler.Job {
		return &ExecJob{
			sched:   s,
			name:    jc.Name,
			command: jc.Command,
			workdir: jc.Workdir,
			timeout: jc.Timeout.Std(),
			logger:  log.WithJob(jc.Name),
		}
	}
}

// Handle executes the command via the shell. A non-zero exit, a timeout, or
// a spawn failure is the job fault; the loop contains it and moves on.
func (j *ExecJob) Handle() error {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", j.command)
	if j.workdir != "" {
		cmd.Dir = j.workdir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &cappedWriter{w: &stderr, limit: maxStderrBytes}

	j.logger.Debug("exec", "command", j.command, "worker", j.sched.Running())
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("command timed out after %v", j.timeout)
	}
	if stderr.Len() > 0 {
		return fmt.Errorf("command failed: %w (stderr: %s)", err, stderr.String())
	}
	return fmt.Errorf("command failed: %w", err)
}

// cappedWriter discards writes past limit so a chatty command can't balloon
// the error we keep.
type cappedWriter struct {
	w     io.Writer
	limit int
	n     int
}

func (c *cappedWriter) Write(p []byte) (int, error) {
	remaining := c.limit - c.n
	if remaining <= 0 {
		return len(p), nil
	}
	if len(p) > remaining {
		if _, err := c.w.Write(p[:remaining]); err != nil {
			return 0, err
		}
		c.n = c.limit
		return len(p), nil
	}
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
