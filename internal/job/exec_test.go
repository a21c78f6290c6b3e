package job

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronark/cronark/internal/config"
	"github.com/cronark/cronark/internal/proc"
	"github.com/cronark/cronark/internal/registry"
	"github.com/cronark/cronark/internal/scheduler"
	"github.com/cronark/cronark/internal/state"
)

func buildExecJob(t *testing.T, jc config.JobConf) scheduler.Job {
	t.Helper()
	reg := registry.New()
	s := scheduler.New(reg, state.NewAccess(state.NewMemKV(), reg), proc.New(), scheduler.Options{Delay: -1})
	return ExecFactory(jc)(s)
}

func TestExecJobSuccess(t *testing.T) {
	j := buildExecJob(t, config.JobConf{Name: "ok", Command: "exit 0"})
	assert.NoError(t, j.Handle())
}

func TestExecJobNonZeroExitWithStderr(t *testing.T) {
	j := buildExecJob(t, config.JobConf{Name: "bad", Command: "echo oops >&2; exit 3"})

	err := j.Handle()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
	assert.Contains(t, err.Error(), "oops")
}

func TestExecJobTimeout(t *testing.T) {
	j := buildExecJob(t, config.JobConf{
		Name:    "slow",
		Command: "sleep 10",
		Timeout: config.Duration(100 * time.Millisecond),
	})

	start := time.Now()
	err := j.Handle()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecJobRunsInWorkdir(t *testing.T) {
	dir := t.TempDir()
	j := buildExecJob(t, config.JobConf{Name: "touch", Command: "touch marker", Workdir: dir})

	require.NoError(t, j.Handle())
	_, err := os.Stat(filepath.Join(dir, "marker"))
	assert.NoError(t, err)
}

func TestCappedWriterStopsAtLimit(t *testing.T) {
	var buf bytes.Buffer
	w := &cappedWriter{w: &buf, limit: 10}

	n, err := w.Write([]byte("12345678"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	// Crosses the limit: only two more bytes land, but the caller sees a
	// full write so the producing command never blocks.
	n, err = w.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "12345678ab", buf.String())

	n, err = w.Write([]byte("xyz"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 10, buf.Len())
}

func TestExecJobStderrIsCapped(t *testing.T) {
	j := buildExecJob(t, config.JobConf{
		Name:    "chatty",
		Command: "yes x 2>/dev/null | head -c 200000 >&2; exit 1",
	})

	err := j.Handle()
	require.Error(t, err)
	assert.Less(t, len(err.Error()), maxStderrBytes+256)
	assert.True(t, strings.Contains(err.Error(), "command failed"))
}
