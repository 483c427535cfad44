package api

import (
	"net/http"

	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	attachments := newAttachmentsHandler(runtime.Attachments, runtime.Logger)

	routes.Register(
		mux,
		domain.Endpoints.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		domain.History.Handler().Routes(),
		domain.Tester.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		attachments.routes(),
	)
}
