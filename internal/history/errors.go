package history

import (
	"errors"
	"net/http"
)

// Domain errors for history operations.
var (
	ErrNotFound        = errors.New("history entry not found")
	ErrEmptyStatus     = errors.New("history status must not be empty")
	ErrInvalidResponse = errors.New("history response must be valid JSON")
	ErrInvalidInput    = errors.New("invalid history request")
)

// MapHTTPStatus maps history domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyStatus) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
