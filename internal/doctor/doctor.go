// Package doctor validates cronark configuration before anything touches
// the state store.
package doctor

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/cronark/cronark/internal/config"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor validates a loaded configuration.
type Doctor struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Doctor {
	return &Doctor{cfg: cfg}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.validateServiceConfig(r)
	d.validateWorkers(r)
	d.validateSchedules(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) validateServiceConfig(r *Result) {
	if d.cfg.State.Path == "" {
		d.addError(r, "service", "state.path", "state.path is required")
	}
	if d.cfg.Service.IterationDelay.Std() < 0 {
		d.addWarning(r, "service", "service.iteration_delay",
			"negative iteration_delay clamps to zero; the loop will spin as fast as jobs allow")
	}
	if d.cfg.API.Enabled && d.cfg.API.Listen == "" {
		d.addError(r, "api", "api.listen", "api.listen is required when api.enabled is true")
	}
}

func (d *Doctor) validateWorkers(r *Result) {
	if len(d.cfg.Workers) == 0 {
		d.addWarning(r, "workers", "workers", "no workers configured; nothing will ever run")
		return
	}

	for name, wc := range d.cfg.Workers {
		if len(wc.Jobs) == 0 {
			d.addWarning(r, "workers", fmt.Sprintf("workers.%s.jobs", name),
				"worker has no jobs; start attempts will abort immediately")
		}

		seen := make(map[string]int)
		for _, jc := range wc.Jobs {
			seen[jc.Name]++
		}
		for jobName, count := range seen {
			if count > 1 {
				d.addWarning(r, "workers", fmt.Sprintf("workers.%s.jobs.%s", name, jobName),
					fmt.Sprintf("job name appears %d times; duplicates run once per occurrence in rotation order", count))
			}
		}

		if wc.Delay != nil && wc.Delay.Std() < 0 {
			d.addWarning(r, "workers", fmt.Sprintf("workers.%s.delay", name),
				"negative delay clamps to zero")
		}
	}
}

func (d *Doctor) validateSchedules(r *Result) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for name, wc := range d.cfg.Workers {
		if wc.Schedule == "" {
			continue
		}
		if _, err := parser.Parse(wc.Schedule); err != nil {
			d.addError(r, "schedule", fmt.Sprintf("workers.%s.schedule", name),
				fmt.Sprintf("invalid cron expression %q: %v", wc.Schedule, err))
		}
	}
}
