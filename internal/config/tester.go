package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	EnvTesterBaseURL     = "BENCH_TESTER_BASE_URL"
	EnvTesterDefaultPath = "BENCH_TESTER_DEFAULT_PATH"
	EnvTesterProbeLimit  = "BENCH_TESTER_PROBE_LIMIT"
)

// TesterConfig holds defaults for the test-submission form.
type TesterConfig struct {
	BaseURL     string `toml:"base_url"`
	DefaultPath string `toml:"default_path"`
	ProbeLimit  int    `toml:"probe_limit"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *TesterConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *TesterConfig) Merge(overlay *TesterConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.DefaultPath != "" {
		c.DefaultPath = overlay.DefaultPath
	}
	if overlay.ProbeLimit != 0 {
		c.ProbeLimit = overlay.ProbeLimit
	}
}

func (c *TesterConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://www.test.ai.com/cam"
	}
	if c.DefaultPath == "" {
		c.DefaultPath = "/single/cam"
	}
	if c.ProbeLimit == 0 {
		c.ProbeLimit = 4
	}
}

func (c *TesterConfig) loadEnv() {
	if v := os.Getenv(EnvTesterBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvTesterDefaultPath); v != "" {
		c.DefaultPath = v
	}
	if v := os.Getenv(EnvTesterProbeLimit); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			c.ProbeLimit = n
		}
	}
}

func (c *TesterConfig) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if !strings.HasPrefix(c.DefaultPath, "/") {
		return fmt.Errorf("default_path must start with /: %q", c.DefaultPath)
	}
	if c.ProbeLimit < 1 {
		return fmt.Errorf("probe_limit must be positive: %d", c.ProbeLimit)
	}
	return nil
}
