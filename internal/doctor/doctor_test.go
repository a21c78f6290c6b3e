package doctor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronark/cronark/internal/config"
)

func baseConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Workers = map[string]config.WorkerConf{
		"email": {
			Schedule: "*/5 * * * *",
			Jobs: []config.JobConf{
				{Name: "send", Command: "/opt/mail/send.sh"},
			},
		},
	}
	return cfg
}

func fields(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Field)
	}
	return out
}

func TestValidateCleanConfig(t *testing.T) {
	r := New(baseConfig()).Validate()

	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidateMissingStatePath(t *testing.T) {
	cfg := baseConfig()
	cfg.State.Path = ""

	r := New(cfg).Validate()

	assert.False(t, r.Valid)
	assert.Contains(t, fields(r.Errors), "state.path")
}

func TestValidateAPIListenRequired(t *testing.T) {
	cfg := baseConfig()
	cfg.API.Enabled = true
	cfg.API.Listen = ""

	r := New(cfg).Validate()

	assert.False(t, r.Valid)
	assert.Contains(t, fields(r.Errors), "api.listen")
}

func TestValidateInvalidSchedule(t *testing.T) {
	cfg := baseConfig()
	wc := cfg.Workers["email"]
	wc.Schedule = "not a cron line"
	cfg.Workers["email"] = wc

	r := New(cfg).Validate()

	require.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "schedule", r.Errors[0].Category)
	assert.Equal(t, "workers.email.schedule", r.Errors[0].Field)
}

func TestValidateSixFieldScheduleRejected(t *testing.T) {
	cfg := baseConfig()
	wc := cfg.Workers["email"]
	wc.Schedule = "0 */5 * * * *"
	cfg.Workers["email"] = wc

	r := New(cfg).Validate()

	assert.False(t, r.Valid, "schedules are 5-field cron, seconds are not accepted")
}

func TestValidateWarnings(t *testing.T) {
	t.Run("no workers", func(t *testing.T) {
		cfg := config.Defaults()
		r := New(cfg).Validate()

		assert.True(t, r.Valid, "warnings alone keep the config valid")
		assert.Contains(t, fields(r.Warnings), "workers")
	})

	t.Run("worker without jobs", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Workers["idle"] = config.WorkerConf{}
		r := New(cfg).Validate()

		assert.True(t, r.Valid)
		assert.Contains(t, fields(r.Warnings), "workers.idle.jobs")
	})

	t.Run("duplicate job names", func(t *testing.T) {
		cfg := baseConfig()
		wc := cfg.Workers["email"]
		wc.Jobs = append(wc.Jobs, config.JobConf{Name: "send", Command: "/opt/mail/send.sh"})
		cfg.Workers["email"] = wc
		r := New(cfg).Validate()

		assert.True(t, r.Valid, "duplicates are legal rotation entries")
		assert.Contains(t, fields(r.Warnings), "workers.email.jobs.send")
	})

	t.Run("negative delays", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Service.IterationDelay = config.Duration(-time.Second)
		neg := config.Duration(-time.Second)
		wc := cfg.Workers["email"]
		wc.Delay = &neg
		cfg.Workers["email"] = wc
		r := New(cfg).Validate()

		assert.True(t, r.Valid)
		assert.Contains(t, fields(r.Warnings), "service.iteration_delay")
		assert.Contains(t, fields(r.Warnings), "workers.email.delay")
	})
}
