package store

import (
	"fmt"
	"os"
)

// Backend names accepted by Config.Backend.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config selects the collection backend and, for files, the base directory.
type Config struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
}

// Env maps config fields to environment variable names.
type Env struct {
	Backend string
	Dir     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.Dir == "" {
		c.Dir = "./app_data"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = v
		}
	}
	if env.Dir != "" {
		if v := os.Getenv(env.Dir); v != "" {
			c.Dir = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFile:
		if c.Dir == "" {
			return fmt.Errorf("dir required for file backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}
