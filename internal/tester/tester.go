// Package tester runs test submissions against the target API and probes
// registered endpoints.
package tester

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/pkg/dispatch"
)

// Submission is one operator request to the target API.
type Submission struct {
	BaseURL  string
	Path     string
	Method   string
	Prompt   string
	DataType string
	Text     string
	JSON     json.RawMessage
	Image    *dispatch.File
	Record   bool
	PromptID *uuid.UUID
}

// URL joins the base and path the way the form displays it.
func (s Submission) URL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.Path
}

// ErrorView is the display and archive form of a dispatch failure.
type ErrorView struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Status  int               `json:"status,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

// Outcome is the result of a submission. Exactly one of Response and Error
// is set.
type Outcome struct {
	URL        string          `json:"url"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code,omitempty"`
	Response   json.RawMessage `json:"response,omitempty"`
	Error      *ErrorView      `json:"error,omitempty"`
	HistoryID  *uuid.UUID      `json:"history_id,omitempty"`
	ImagePath  *string         `json:"image_path,omitempty"`
}

// ProbeResult reports whether one registered endpoint answered.
type ProbeResult struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	Status    int    `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Defaults fill in omitted submission fields.
type Defaults struct {
	BaseURL    string
	Path       string
	ProbeLimit int
	ProbeWait  time.Duration
}

var dataTypes = map[string]dispatch.Kind{
	"":       dispatch.KindNone,
	"none":   dispatch.KindNone,
	"text":   dispatch.KindText,
	"string": dispatch.KindText,
	"문자열":    dispatch.KindText,
	"json":   dispatch.KindJSON,
	"image":  dispatch.KindImage,
	"이미지":    dispatch.KindImage,
}

// ParseDataType maps a data type label to a payload kind. The labels used by
// the original dashboard are accepted alongside the English names.
func ParseDataType(s string) (dispatch.Kind, error) {
	s = strings.TrimSpace(s)
	if k, ok := dataTypes[s]; ok {
		return k, nil
	}
	if k, ok := dataTypes[strings.ToLower(s)]; ok {
		return k, nil
	}
	return "", ErrInvalidDataType
}

// ParseMethod normalizes and checks an HTTP method.
func ParseMethod(s string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(s))
	switch m {
	case "":
		return "GET", nil
	case "GET", "POST":
		return m, nil
	}
	return "", ErrInvalidMethod
}

func viewError(err error) *ErrorView {
	view := &ErrorView{Kind: "internal", Message: err.Error()}

	var derr *dispatch.Error
	if errors.As(err, &derr) {
		view.Kind = kindName(derr.Kind)
		view.Status = derr.Status
		view.Headers = derr.Headers()
		view.Body = derr.Body
	}
	return view
}

func kindName(kind error) string {
	switch kind {
	case dispatch.ErrMalformedURL:
		return "malformed_url"
	case dispatch.ErrConnection:
		return "connection"
	case dispatch.ErrTransport:
		return "transport"
	case dispatch.ErrNotJSON:
		return "not_json"
	case dispatch.ErrInvalidPayload:
		return "invalid_payload"
	case dispatch.ErrInvalidMethod:
		return "invalid_method"
	}
	return "internal"
}
