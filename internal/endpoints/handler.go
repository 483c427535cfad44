package endpoints

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptbench/pkg/handlers"
	"github.com/JaimeStill/promptbench/pkg/routes"
)

// Handler provides HTTP endpoints for endpoint registration.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// RegisterRequest is the body of POST /endpoints.
type RegisterRequest struct {
	URL string `json:"url"`
}

// NewHandler creates a Handler for sys.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "endpoints"),
	}
}

// Routes returns the route group definition for endpoint operations.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/endpoints",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Register},
			{Method: "DELETE", Pattern: "", Handler: h.Delete},
		},
	}
}

// List returns every registered endpoint.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.List(r.Context()))
}

// Register adds the endpoint in the request body.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	added, err := h.sys.Register(r.Context(), req.URL)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if !added {
		handlers.RespondError(w, h.logger, http.StatusConflict, ErrDuplicate)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, req)
}

// Delete removes the endpoint named by the url query parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyURL)
		return
	}

	removed, err := h.sys.Delete(r.Context(), url)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if !removed {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
