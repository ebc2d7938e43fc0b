// Package config handles loading gripe configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in configuration.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultDataFile is the flat-file location used when nothing is configured.
const DefaultDataFile = "data/grievances.json"

// Config is the root configuration for gripe.
//
// Precedence, lowest to highest: built-in defaults, YAML config file,
// GRIPE_* environment variables, command-line flags.
type Config struct {
	DataFile string `yaml:"data_file,omitempty"` // Backing file (JSON) or database (sqlite). Override: GRIPE_DATA_FILE.
	Backend  string `yaml:"backend,omitempty"`   // "json" (default) or "sqlite". Override: GRIPE_BACKEND.
	Sort     string `yaml:"sort,omitempty"`      // Default list ordering: "date" (default) or "votes". Override: GRIPE_SORT.
	Format   string `yaml:"format,omitempty"`    // Output format: "text" (default) or "json". Override: GRIPE_FORMAT.
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		Backend:  BackendJSON,
		Sort:     "date",
		Format:   "text",
	}
}

// Load builds a Config from defaults, an optional YAML file, and
// environment overrides.
//
// A missing file at the default path is not an error; an explicitly
// configured path that does not exist is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = "gripe.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies GRIPE_* environment overrides.
// Environment variables take precedence over config file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GRIPE_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("GRIPE_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("GRIPE_SORT"); v != "" {
		cfg.Sort = v
	}
	if v := os.Getenv("GRIPE_FORMAT"); v != "" {
		cfg.Format = v
	}
}

// Validate checks cross-field constraints. Called again after
// command-line flag overrides are applied.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: must be %q or %q", c.Backend, BackendJSON, BackendSQLite)
	}
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	return nil
}
