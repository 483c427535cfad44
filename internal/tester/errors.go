package tester

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/promptbench/internal/prompts"
)

// Domain errors for test submissions.
var (
	ErrInvalidDataType = errors.New("data type must be none, text, json, or image")
	ErrInvalidMethod   = errors.New("method must be GET or POST")
	ErrInvalidInput    = errors.New("invalid submission")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps tester errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidDataType),
		errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, prompts.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
