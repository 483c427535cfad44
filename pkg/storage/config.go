package storage

import (
	"fmt"
	"os"
	"strconv"
)

// Provider names accepted by Config.Provider.
const (
	ProviderLocal = "local"
	ProviderAzure = "azure"
)

// Config selects the attachment provider and its connection parameters.
type Config struct {
	Provider         string `toml:"provider"`
	Dir              string `toml:"dir"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	MaxRetries       int    `toml:"max_retries"`
}

// Env maps config fields to environment variable names.
type Env struct {
	Provider         string
	Dir              string
	ContainerName    string
	ConnectionString string
	AccountURL       string
	MaxRetries       string
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
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.Dir == "" {
		c.Dir = "./app_data/attachments"
	}
	if c.ContainerName == "" {
		c.ContainerName = "attachments"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(dst *string, name string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(&c.Provider, env.Provider)
	set(&c.Dir, env.Dir)
	set(&c.ContainerName, env.ContainerName)
	set(&c.ConnectionString, env.ConnectionString)
	set(&c.AccountURL, env.AccountURL)

	if env.MaxRetries != "" {
		if n, err := strconv.Atoi(os.Getenv(env.MaxRetries)); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderLocal:
		if c.Dir == "" {
			return fmt.Errorf("dir required for local provider")
		}
	case ProviderAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required")
		}
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("connection_string or account_url required")
		}
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	return nil
}
