//go:build !linux

package proc

import "fmt"

// ScriptPath is undeterminable without procfs. Callers treat the error as a
// collision, so on these platforms a stored pid for any live process keeps
// the worker marked active.
func (m *Monitor) ScriptPath(pid int) (string, error) {
	return "", fmt.Errorf("script path lookup is unsupported on this platform")
}
