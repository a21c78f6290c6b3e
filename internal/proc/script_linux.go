//go:build linux

package proc

import (
	"fmt"
	"os"
)

// ScriptPath returns the executable path of pid via /proc. An error here
// must be treated by callers as "undeterminable", which the duplicate check
// deliberately interprets as a collision.
func (m *Monitor) ScriptPath(pid int) (string, error) {
	if pid <= 0 {
		return "", fmt.Errorf("invalid pid %d", pid)
	}
	path, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return "", fmt.Errorf("readlink /proc/%d/exe: %w", pid, err)
	}
	return path, nil
}
