// Package config loads langserved's startup configuration from a YAML file
// with environment-variable overrides applied on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything read once at boot and treated as immutable
// thereafter (spec.md §3, Configuration).
type Config struct {
	DataRoot          string        `yaml:"data_root"`
	ListenAddr        string        `yaml:"listen_addr"`
	WatcherDebounceMS int           `yaml:"watcher_debounce_ms"`
	QueueSize         int           `yaml:"queue_size"`
	Logging           LoggingConfig `yaml:"logging"`
	Audit             AuditConfig   `yaml:"audit"`
}

// LoggingConfig controls the process-wide zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
	JSON  bool   `yaml:"json"`
}

// AuditConfig controls the optional SQLite operational audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataRoot:          "data",
		ListenAddr:        ":8080",
		WatcherDebounceMS: 500,
		QueueSize:         64,
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
		},
		Audit: AuditConfig{
			Enabled: false,
			Path:    "data/audit.db",
		},
	}
}

// Load reads a YAML config file at path, falling back to defaults for any
// field the file omits, then applies environment overrides. An empty path
// returns the defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment overrides on top of the defaults and
// the config file: an env var only takes effect if set to a non-empty value,
// and then replaces whatever value the file or the defaults supplied. A
// numeric var that does not parse as a positive integer is ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LANGSERVED_DATA_ROOT"); v != "" {
		c.DataRoot = v
	}
	if v := os.Getenv("LANGSERVED_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LANGSERVED_WATCHER_DEBOUNCE_MS"); v != "" {
		if ms, err := parsePositiveInt(v); err == nil {
			c.WatcherDebounceMS = ms
		}
	}
	if v := os.Getenv("LANGSERVED_QUEUE_SIZE"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			c.QueueSize = n
		}
	}
	if v := os.Getenv("LANGSERVED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value %q must be positive", s)
	}
	return n, nil
}
