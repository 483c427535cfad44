// Package dashboard serves the server-rendered operator pages.
package dashboard

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path"

	"github.com/JaimeStill/promptbench/internal/endpoints"
	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/internal/tester"
	"github.com/JaimeStill/promptbench/pkg/middleware"
	"github.com/JaimeStill/promptbench/pkg/module"
	"github.com/JaimeStill/promptbench/pkg/pagination"
	"github.com/JaimeStill/promptbench/pkg/web"
)

// Systems are the domain systems the pages read and write.
type Systems struct {
	Endpoints endpoints.System
	Prompts   prompts.System
	History   history.System
	Tester    tester.System
}

// Options configure the dashboard module.
type Options struct {
	BasePath      string
	APIBasePath   string
	DataLocation  string
	MaxUploadSize int64
	Pagination    pagination.Config
}

// Handler renders dashboard pages.
type Handler struct {
	sys    Systems
	opts   Options
	views  *web.TemplateSet
	logger *slog.Logger
}

// NewHandler parses the embedded templates and creates a Handler.
func NewHandler(sys Systems, opts Options, logger *slog.Logger) (*Handler, error) {
	views, err := web.NewTemplateSet(
		templateFS,
		"templates/layouts/*.html",
		"templates/views",
		layoutName,
		opts.BasePath,
		template.FuncMap{
			"attachment": func(key string) string {
				return path.Join(opts.APIBasePath, "attachments", key)
			},
		},
		allViews,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard templates: %w", err)
	}

	return &Handler{
		sys:    sys,
		opts:   opts,
		views:  views,
		logger: logger.With("handler", "dashboard"),
	}, nil
}

// NewModule mounts the dashboard under opts.BasePath.
func NewModule(sys Systems, opts Options, logger *slog.Logger) (*module.Module, error) {
	logger = logger.With("module", "dashboard")

	h, err := NewHandler(sys, opts, logger)
	if err != nil {
		return nil, err
	}

	m := module.New(opts.BasePath, h.Mux())
	m.Use(middleware.Logger(logger))
	return m, nil
}

// Mux registers every page on a new ServeMux. Paths are relative to the
// module prefix.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /tester", h.testerPage)
	mux.HandleFunc("POST /tester", h.testerSubmit)
	mux.HandleFunc("GET /prompts", h.promptsPage)
	mux.HandleFunc("GET /history", h.historyPage)
	mux.HandleFunc("GET /history/{id}", h.entryPage)
	mux.HandleFunc("GET /settings", h.settingsPage)
	mux.HandleFunc("POST /settings/endpoints", h.addEndpoint)
	mux.HandleFunc("POST /settings/endpoints/delete", h.deleteEndpoint)
	mux.Handle("GET /static/", web.StaticServer(templateFS, "templates/static", "/static/"))
	mux.HandleFunc("/", h.views.StatusHandler(notFoundView, http.StatusNotFound))

	return mux
}

func (h *Handler) render(w http.ResponseWriter, status int, view web.ViewDef, data web.ViewData) {
	if err := h.views.Render(w, status, view, data); err != nil {
		h.logger.Error("render failed", "view", view.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
