package dispatch

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds carried by *Error.
var (
	ErrMalformedURL   = errors.New("malformed url")
	ErrConnection     = errors.New("connection failed")
	ErrTransport      = errors.New("request failed")
	ErrNotJSON        = errors.New("response is not valid JSON")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrInvalidMethod  = errors.New("unsupported method")
)

// Error is a classified dispatch failure. Status, Header, and Body are set
// when the target answered.
type Error struct {
	Kind   error
	Status int
	Header http.Header
	Body   string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports whether target is the failure kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Headers flattens the response headers for display.
func (e *Error) Headers() map[string]string {
	if len(e.Header) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Header))
	for k := range e.Header {
		out[k] = e.Header.Get(k)
	}
	return out
}

// MapHTTPStatus maps dispatch failures to the status a proxying handler
// should answer with.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMalformedURL),
		errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrInvalidMethod):
		return http.StatusBadRequest
	case errors.Is(err, ErrConnection),
		errors.Is(err, ErrTransport),
		errors.Is(err, ErrNotJSON):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
