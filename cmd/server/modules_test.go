package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/internal/infrastructure"
)

func newTestRouter(t *testing.T) (http.Handler, *infrastructure.Infrastructure) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BENCH_STORE_DIR", dir)
	t.Setenv("BENCH_ATTACHMENTS_DIR", filepath.Join(dir, "attachments"))

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	infra, err := infrastructure.NewWithWriter(cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		t.Fatalf("NewModules: %v", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)
	return router, infra
}

func TestRouter(t *testing.T) {
	router, infra := newTestRouter(t)

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"health", "/healthz", http.StatusOK, `"ok"`},
		{"not ready before startup", "/readyz", http.StatusServiceUnavailable, "not ready"},
		{"root redirects", "/", http.StatusFound, ""},
		{"dashboard", "/app", http.StatusOK, "promptbench"},
		{"dashboard trailing slash", "/app/", http.StatusOK, "promptbench"},
		{"api", "/api/endpoints", http.StatusOK, "[]"},
		{"unknown", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q: %s", tt.contains, rec.Body)
			}
		})
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readyz after startup = %d", rec.Code)
	}
}
