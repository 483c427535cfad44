package tester

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/pkg/handlers"
	"github.com/JaimeStill/promptbench/pkg/routes"
)

// Handler provides HTTP endpoints for submissions and endpoint probing.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// SubmitRequest is the JSON form of a submission. Multipart requests carry
// the same field names as form values plus an "image" file.
type SubmitRequest struct {
	BaseURL  string          `json:"base_url"`
	Path     string          `json:"path"`
	Method   string          `json:"method"`
	Prompt   string          `json:"prompt"`
	DataType string          `json:"data_type"`
	Text     string          `json:"text"`
	JSON     json.RawMessage `json:"json"`
	Record   bool            `json:"record"`
	PromptID *uuid.UUID      `json:"prompt_id"`
}

// Submission converts the request into a Submission without an image.
func (r SubmitRequest) Submission() Submission {
	return Submission{
		BaseURL:  r.BaseURL,
		Path:     r.Path,
		Method:   r.Method,
		Prompt:   r.Prompt,
		DataType: r.DataType,
		Text:     r.Text,
		JSON:     r.JSON,
		Record:   r.Record,
		PromptID: r.PromptID,
	}
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "tester"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for tester endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/dispatch", Handler: h.Dispatch},
			{Method: "GET", Pattern: "/endpoints/probe", Handler: h.Probe},
		},
	}
}

// Dispatch runs a submission from a JSON or multipart request body.
// Target failures are reported in the outcome with status 200.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	sub, err := h.decode(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	outcome, err := h.sys.Submit(r.Context(), sub)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, outcome)
}

// Probe reports reachability of every registered endpoint.
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Probe(r.Context()))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Submission, error) {
	if isMultipart(r) {
		return h.decodeMultipart(w, r)
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Submission{}, ErrInvalidInput
	}
	return req.Submission(), nil
}

func (h *Handler) decodeMultipart(w http.ResponseWriter, r *http.Request) (Submission, error) {
	if err := ParseUploadForm(w, r, h.maxUploadSize); err != nil {
		return Submission{}, err
	}

	sub := Submission{
		BaseURL:  r.FormValue("base_url"),
		Path:     r.FormValue("path"),
		Method:   r.FormValue("method"),
		Prompt:   r.FormValue("prompt"),
		DataType: r.FormValue("data_type"),
		Text:     r.FormValue("text"),
	}
	if v := r.FormValue("json"); v != "" {
		sub.JSON = json.RawMessage(v)
	}
	if v := r.FormValue("record"); v != "" {
		record, err := strconv.ParseBool(v)
		if err != nil {
			return Submission{}, ErrInvalidInput
		}
		sub.Record = record
	}
	if v := r.FormValue("prompt_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return Submission{}, ErrInvalidInput
		}
		sub.PromptID = &id
	}

	img, err := FormImage(r)
	if err != nil {
		return Submission{}, err
	}
	sub.Image = img
	return sub, nil
}
