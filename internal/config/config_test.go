package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/pkg/store"
)

const baseConfig = `
shutdown_timeout = "20s"

[server]
port = 8080

[store]
dir = "./data"

[tester]
base_url = "http://camera.local/cam"

[dispatch]
timeout = "10s"

[api.pagination]
default_page_size = 5
max_page_size = 25

[log]
level = "debug"
format = "json"
`

const overlayConfig = `
[server]
port = 9090

[tester]
default_path = "/multi/cam"
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Server.Port, 8080},
		{"store backend", cfg.Store.Backend, store.BackendFile},
		{"store dir", cfg.Store.Dir, "./app_data"},
		{"base url", cfg.Tester.BaseURL, "http://www.test.ai.com/cam"},
		{"default path", cfg.Tester.DefaultPath, "/single/cam"},
		{"dispatch timeout", cfg.Dispatch.TimeoutDuration(), 30 * time.Second},
		{"api base path", cfg.API.BasePath, "/api"},
		{"max upload", cfg.API.MaxUploadSizeBytes(), int64(20 << 20)},
		{"attachments dir", cfg.Attachments.Dir, "./app_data/attachments"},
		{"log level", cfg.Log.SlogLevel(), slog.LevelInfo},
		{"shutdown", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"env", cfg.Env(), "local"},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "config.toml", baseConfig)
	writeFile(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv("BENCH_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Tester.BaseURL != "http://camera.local/cam" {
		t.Errorf("base url = %s", cfg.Tester.BaseURL)
	}
	if cfg.Tester.DefaultPath != "/multi/cam" {
		t.Errorf("default path = %s", cfg.Tester.DefaultPath)
	}
	if cfg.API.Pagination.DefaultPageSize != 5 || cfg.API.Pagination.MaxPageSize != 25 {
		t.Errorf("pagination = %+v", cfg.API.Pagination)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.ShutdownTimeoutDuration() != 20*time.Second {
		t.Errorf("shutdown = %v", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	writeFile(t, dir, "bench.toml", baseConfig)
	t.Setenv("BENCH_CONFIG", filepath.Join(dir, "bench.toml"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Dir != "./data" {
		t.Errorf("store dir = %s", cfg.Store.Dir)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BENCH_TESTER_BASE_URL", "https://api.example.com/v2")
	t.Setenv("BENCH_STORE_DIR", "/var/lib/bench")
	t.Setenv("BENCH_SERVER_PORT", "7000")
	t.Setenv("BENCH_DISPATCH_TIMEOUT", "5s")
	t.Setenv("BENCH_API_MAX_UPLOAD_SIZE", "1MB")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tester.BaseURL != "https://api.example.com/v2" {
		t.Errorf("base url = %s", cfg.Tester.BaseURL)
	}
	if cfg.Store.Dir != "/var/lib/bench" {
		t.Errorf("store dir = %s", cfg.Store.Dir)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Dispatch.TimeoutDuration() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Dispatch.TimeoutDuration())
	}
	if cfg.API.MaxUploadSizeBytes() != 1<<20 {
		t.Errorf("max upload = %d", cfg.API.MaxUploadSizeBytes())
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"BENCH_SERVER_PORT": "70000"}},
		{"bad base url", map[string]string{"BENCH_TESTER_BASE_URL": "not a url"}},
		{"bad path", map[string]string{"BENCH_TESTER_DEFAULT_PATH": "single/cam"}},
		{"bad log level", map[string]string{"BENCH_LOG_LEVEL": "verbose"}},
		{"bad store backend", map[string]string{"BENCH_STORE_BACKEND": "redis"}},
		{"bad upload size", map[string]string{"BENCH_API_MAX_UPLOAD_SIZE": "lots"}},
		{"bad shutdown", map[string]string{"BENCH_SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := &config.Config{}
			if err := cfg.Finalize(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDatabaseOnlyForPostgres(t *testing.T) {
	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Database.Name != "" {
		t.Errorf("database finalized for file backend: %+v", cfg.Database)
	}

	t.Setenv("BENCH_STORE_BACKEND", "postgres")
	t.Setenv("BENCH_DB_URL", "postgres://u:p@db:5432/bench")

	cfg = &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize postgres: %v", err)
	}
	if cfg.Database.Dsn() != "postgres://u:p@db:5432/bench" {
		t.Errorf("dsn = %s", cfg.Database.Dsn())
	}
}
