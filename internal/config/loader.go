package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses configuration from a YAML file. ${VAR} references
// are expanded from the environment before parsing; unset variables expand
// to the empty string.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: check the path or run with --config", absPath)
	}
	if info.IsDir() {
		absPath = filepath.Join(absPath, "cronark.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but cronark.yaml not found: %s", absPath)
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	data = expandEnvVars(data)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", absPath, err)
	}
	if cfg.Workers == nil {
		cfg.Workers = make(map[string]WorkerConf)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Discover finds the config file by checking standard locations.
// Priority order: $CRONARK_CONFIG, ~/.config/cronark/cronark.yaml,
// /etc/cronark/cronark.yaml, ./cronark.yaml.
func Discover() (string, error) {
	if p := os.Getenv("CRONARK_CONFIG"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("CRONARK_CONFIG is set but unreadable: %s", p)
	}

	var candidates []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".config", "cronark", "cronark.yaml"))
	}
	candidates = append(candidates, "/etc/cronark/cronark.yaml", "./cronark.yaml")

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no config file found (set CRONARK_CONFIG or pass --config)")
}

func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

func validate(cfg *Config) error {
	if cfg.Service.Name == "" {
		return fmt.Errorf("service.name is required")
	}
	if cfg.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	if cfg.API.Enabled && cfg.API.Listen == "" {
		return fmt.Errorf("api.listen is required when api.enabled is true")
	}
	for name, wc := range cfg.Workers {
		if name == "" {
			return fmt.Errorf("worker name must not be empty")
		}
		for i, jc := range wc.Jobs {
			if jc.Name == "" {
				return fmt.Errorf("workers.%s.jobs[%d].name is required", name, i)
			}
			if jc.Command == "" {
				return fmt.Errorf("workers.%s.jobs[%d].command is required", name, i)
			}
			if jc.Timeout.Std() < 0 {
				return fmt.Errorf("workers.%s.jobs[%d].timeout must not be negative", name, i)
			}
		}
	}
	return nil
}
