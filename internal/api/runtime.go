package api

import (
	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/internal/infrastructure"
	"github.com/JaimeStill/promptbench/internal/tester"
	"github.com/JaimeStill/promptbench/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Tester     tester.Defaults
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:   infra.Lifecycle,
			Logger:      infra.Logger.With("module", "api"),
			Database:    infra.Database,
			Store:       infra.Store,
			Attachments: infra.Attachments,
			Dispatch:    infra.Dispatch,
		},
		Pagination: cfg.API.Pagination,
		Tester: tester.Defaults{
			BaseURL:    cfg.Tester.BaseURL,
			Path:       cfg.Tester.DefaultPath,
			ProbeLimit: cfg.Tester.ProbeLimit,
			ProbeWait:  cfg.Dispatch.TimeoutDuration(),
		},
	}
}
