package endpoints

import (
	"errors"
	"net/http"
)

// Domain errors for endpoint operations.
var (
	ErrEmptyURL     = errors.New("endpoint url must not be empty")
	ErrDuplicate    = errors.New("endpoint already registered")
	ErrNotFound     = errors.New("endpoint not found")
	ErrInvalidInput = errors.New("invalid endpoint request")
)

// MapHTTPStatus maps endpoint domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyURL), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
