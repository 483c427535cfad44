package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/promptbench/internal/api"
	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/internal/dashboard"
	"github.com/JaimeStill/promptbench/internal/infrastructure"
	"github.com/JaimeStill/promptbench/pkg/module"
)

const dashboardBasePath = "/app"

// Modules holds the mounted top-level modules.
type Modules struct {
	API       *module.Module
	Dashboard *module.Module
}

// NewModules builds the API module and a dashboard sharing its domain systems.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain := api.Build(cfg, infra)

	dashboardModule, err := dashboard.NewModule(
		dashboard.Systems{
			Endpoints: domain.Endpoints,
			Prompts:   domain.Prompts,
			History:   domain.History,
			Tester:    domain.Tester,
		},
		dashboard.Options{
			BasePath:      dashboardBasePath,
			APIBasePath:   cfg.API.BasePath,
			DataLocation:  infra.Store.Location(),
			MaxUploadSize: cfg.API.MaxUploadSizeBytes(),
			Pagination:    cfg.API.Pagination,
		},
		infra.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:       apiModule,
		Dashboard: dashboardModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Dashboard)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboardBasePath, http.StatusFound)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
