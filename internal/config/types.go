package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML can say "5s" or "1m30s". A bare
// integer is taken as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration: %s", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the complete cronark configuration.
type Config struct {
	Service ServiceConfig         `yaml:"service"`
	State   StateConfig           `yaml:"state"`
	API     APIConfig             `yaml:"api,omitempty"`
	Workers map[string]WorkerConf `yaml:"workers"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name           string   `yaml:"name"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	IterationDelay Duration `yaml:"iteration_delay"`
}

// StateConfig defines state storage settings.
type StateConfig struct {
	Path string `yaml:"path"`
}

// APIConfig defines the read-only status API server settings.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// WorkerConf defines a single worker: its ordered job list plus how the
// built-in trigger daemon fires it.
type WorkerConf struct {
	// Schedule is a 5-field cron expression used by `cronark system run`.
	// Empty means the worker is only started by external invocation.
	Schedule string `yaml:"schedule,omitempty"`

	// Delay overrides service.iteration_delay for this worker.
	Delay *Duration `yaml:"delay,omitempty"`

	Jobs []JobConf `yaml:"jobs"`
}

// JobConf defines one job in a worker's rotation. Names may repeat; the
// list order is the execution order.
type JobConf struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Workdir string   `yaml:"workdir,omitempty"`
	Timeout Duration `yaml:"timeout,omitempty"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:           "cronark",
			LogLevel:       "info",
			LogFormat:      "json",
			IterationDelay: Duration(5 * time.Second),
		},
		State: StateConfig{
			Path: "./data/cronark.db",
		},
		API: APIConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8321",
		},
		Workers: make(map[string]WorkerConf),
	}
}

// DelayFor returns the effective inter-iteration delay for a worker,
// clamped at zero.
func (c *Config) DelayFor(worker string) time.Duration {
	d := c.Service.IterationDelay.Std()
	if wc, ok := c.Workers[worker]; ok && wc.Delay != nil {
		d = wc.Delay.Std()
	}
	if d < 0 {
		return 0
	}
	return d
}
