package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptbench/pkg/module"
)

func TestNewRejectsInvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic for %q", prefix)
				}
			}()
			module.New(prefix, http.NewServeMux())
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	})

	m := module.New("/app", mux)

	tests := []struct {
		path string
		want string
	}{
		{"/app", "/"},
		{"/app/history/42", "/history/42"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))
			if seen != tt.want {
				t.Errorf("inner path = %q, want %q", seen, tt.want)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", http.NewServeMux())

	var called bool
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	})

	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/anything", nil))
	if !called {
		t.Error("module middleware not called")
	}
}

func TestRouter(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /endpoints", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", apiMux))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name string
		path string
		want int
	}{
		{"module route", "/api/endpoints", http.StatusOK},
		{"trailing slash", "/api/endpoints/", http.StatusOK},
		{"native route", "/healthz", http.StatusNoContent},
		{"module miss", "/api/missing", http.StatusNotFound},
		{"unmounted prefix", "/other", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
