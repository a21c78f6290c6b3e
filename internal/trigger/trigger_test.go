package trigger

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronark/cronark/internal/config"
)

type countingRunner struct {
	starts *atomic.Int32
}

func (r countingRunner) Start(context.Context, string) { r.starts.Add(1) }

func testFactory(starts *atomic.Int32) RunnerFactory {
	return func(string) Runner { return countingRunner{starts: starts} }
}

func TestStartAndStop(t *testing.T) {
	cfg := config.Defaults()
	cfg.Workers = map[string]config.WorkerConf{
		"scheduled": {Schedule: "*/5 * * * *", Jobs: []config.JobConf{{Name: "j", Command: "true"}}},
		"manual":    {Jobs: []config.JobConf{{Name: "j", Command: "true"}}},
	}

	var starts atomic.Int32
	d := New(cfg, testFactory(&starts), nil)

	require.NoError(t, d.Start())
	d.Stop()

	// Nothing fires inside a test-length window with a 5-minute schedule;
	// only registration and shutdown are exercised here.
	assert.Equal(t, int32(0), starts.Load())
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	cfg := config.Defaults()
	cfg.Workers = map[string]config.WorkerConf{
		"broken": {Schedule: "every day at noon", Jobs: []config.JobConf{{Name: "j", Command: "true"}}},
	}

	var starts atomic.Int32
	d := New(cfg, testFactory(&starts), nil)

	err := d.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `worker "broken"`)
}

func TestStopWithoutStart(t *testing.T) {
	var starts atomic.Int32
	d := New(config.Defaults(), testFactory(&starts), nil)

	// Must not panic on a daemon that never started.
	d.Stop()
}
