// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/internal/infrastructure"
	"github.com/JaimeStill/promptbench/pkg/middleware"
	"github.com/JaimeStill/promptbench/pkg/module"
)

// NewModule creates the API module from an already assembled Domain.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain) *module.Module {
	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m
}

// Build creates the runtime, domain, and module in one step.
func Build(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)
	return NewModule(cfg, runtime, domain), domain
}
