package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptbench/pkg/database"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
	"github.com/JaimeStill/promptbench/pkg/storage"
	"github.com/JaimeStill/promptbench/pkg/store"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBenchEnv             = "BENCH_ENV"
	EnvBenchConfig          = "BENCH_CONFIG"
	EnvBenchShutdownTimeout = "BENCH_SHUTDOWN_TIMEOUT"
	EnvBenchVersion         = "BENCH_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "BENCH_DB_URL",
	Host:            "BENCH_DB_HOST",
	Port:            "BENCH_DB_PORT",
	Name:            "BENCH_DB_NAME",
	User:            "BENCH_DB_USER",
	Password:        "BENCH_DB_PASSWORD",
	SSLMode:         "BENCH_DB_SSL_MODE",
	MaxOpenConns:    "BENCH_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BENCH_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BENCH_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BENCH_DB_CONN_TIMEOUT",
}

var storeEnv = &store.Env{
	Backend: "BENCH_STORE_BACKEND",
	Dir:     "BENCH_STORE_DIR",
}

var attachmentsEnv = &storage.Env{
	Provider:         "BENCH_ATTACHMENTS_PROVIDER",
	Dir:              "BENCH_ATTACHMENTS_DIR",
	ContainerName:    "BENCH_ATTACHMENTS_CONTAINER_NAME",
	ConnectionString: "BENCH_ATTACHMENTS_CONNECTION_STRING",
	AccountURL:       "BENCH_ATTACHMENTS_ACCOUNT_URL",
	MaxRetries:       "BENCH_ATTACHMENTS_MAX_RETRIES",
}

var dispatchEnv = &dispatch.Env{
	Timeout:   "BENCH_DISPATCH_TIMEOUT",
	UserAgent: "BENCH_DISPATCH_USER_AGENT",
}

// Config is the root configuration for promptbench.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Store           store.Config    `toml:"store"`
	Database        database.Config `toml:"database"`
	Attachments     storage.Config  `toml:"attachments"`
	Dispatch        dispatch.Config `toml:"dispatch"`
	Tester          TesterConfig    `toml:"tester"`
	API             APIConfig       `toml:"api"`
	Log             LogConfig       `toml:"log"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the BENCH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBenchEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. BENCH_CONFIG replaces the base file path.
func Load() (*Config, error) {
	cfg := &Config{}

	base := BaseConfigFile
	if v := os.Getenv(EnvBenchConfig); v != "" {
		base = v
	}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Store.Merge(&overlay.Store)
	c.Database.Merge(&overlay.Database)
	c.Attachments.Merge(&overlay.Attachments)
	c.Dispatch.Merge(&overlay.Dispatch)
	c.Tester.Merge(&overlay.Tester)
	c.API.Merge(&overlay.API)
	c.Log.Merge(&overlay.Log)
}

// Finalize applies defaults, environment overrides, and validation to every
// section. Database settings are only finalized for the postgres store.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Store.Finalize(storeEnv); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.Store.Backend == store.BackendPostgres {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if err := c.Attachments.Finalize(attachmentsEnv); err != nil {
		return fmt.Errorf("attachments: %w", err)
	}
	if err := c.Dispatch.Finalize(dispatchEnv); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	if err := c.Tester.Finalize(); err != nil {
		return fmt.Errorf("tester: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Log.Finalize(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBenchShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBenchVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBenchEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
