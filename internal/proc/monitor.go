// Package proc wraps the OS process primitives the duplicate-prevention
// protocol needs: pid identity, liveness probing, script-path lookup, and
// termination.
package proc

import (
	"errors"
	"os"
	"syscall"
)

// Monitor performs process introspection against the running OS.
type Monitor struct{}

func New() *Monitor {
	return &Monitor{}
}

// Current returns the calling process's pid.
func (m *Monitor) Current() int {
	return os.Getpid()
}

// Exists reports whether a process with the given pid is alive. Signal 0
// probes without delivering anything; EPERM means the process exists but
// belongs to another user.
func (m *Monitor) Exists(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

// Terminate sends SIGTERM to pid and reports whether the signal was
// delivered. A false return with the process already gone is the caller's
// problem to disambiguate via Exists.
func (m *Monitor) Terminate(pid int) bool {
	if pid <= 0 {
		return false
	}
	return syscall.Kill(pid, syscall.SIGTERM) == nil
}
