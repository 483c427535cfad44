// Package dispatch sends a single GET or POST request to a target API and
// normalizes the outcome into parsed JSON or a classified *Error.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one outbound call.
type Request struct {
	URL     string
	Method  string
	Payload Payload
}

// Response is a successful call: a 2xx status with a JSON body.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       json.RawMessage
}

// Client dispatches requests with a shared http.Client.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// New creates a Client from cfg. cfg must be finalized.
func New(cfg *Config, logger *slog.Logger) *Client {
	return NewWithHTTPClient(
		&http.Client{Timeout: cfg.TimeoutDuration()},
		cfg.UserAgent,
		logger,
	)
}

// NewWithHTTPClient creates a Client around an existing http.Client.
func NewWithHTTPClient(hc *http.Client, userAgent string, logger *slog.Logger) *Client {
	return &Client{
		http:      hc,
		userAgent: userAgent,
		logger:    logger.With("system", "dispatch"),
	}
}

// Dispatch sends req and returns the parsed JSON response. Every failure is
// returned as *Error whose kind matches one of the package sentinels.
func (c *Client) Dispatch(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method != http.MethodGet && method != http.MethodPost {
		return nil, &Error{Kind: ErrInvalidMethod, Err: fmt.Errorf("method %q", req.Method)}
	}

	target, err := parseTarget(req.URL)
	if err != nil {
		return nil, &Error{Kind: ErrMalformedURL, Err: err}
	}

	httpReq, err := c.build(ctx, method, target, req.Payload)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("dispatching request", "method", method, "url", httpReq.URL.String(), "kind", req.Payload.Kind)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:   ErrTransport,
			Status: resp.StatusCode,
			Header: resp.Header,
			Err:    fmt.Errorf("read body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:   ErrTransport,
			Status: resp.StatusCode,
			Header: resp.Header,
			Body:   string(body),
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if !json.Valid(body) {
		return nil, &Error{
			Kind:   ErrNotJSON,
			Status: resp.StatusCode,
			Header: resp.Header,
			Body:   string(body),
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       json.RawMessage(body),
	}, nil
}

func (c *Client) build(ctx context.Context, method string, target *url.URL, p Payload) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch method {
	case http.MethodGet:
		query := target.Query()
		if err := p.applyQuery(query); err != nil {
			return nil, &Error{Kind: ErrInvalidPayload, Err: err}
		}
		target.RawQuery = query.Encode()

	case http.MethodPost:
		var (
			buf bytes.Buffer
			err error
		)
		if p.Kind == KindImage {
			contentType, err = p.writeMultipart(&buf)
		} else {
			contentType = "application/json"
			err = p.writeJSON(&buf)
		}
		if err != nil {
			return nil, &Error{Kind: ErrInvalidPayload, Err: err}
		}
		body = &buf
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, &Error{Kind: ErrMalformedURL, Err: err}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	return httpReq, nil
}

func parseTarget(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}

func classify(err error) *Error {
	var (
		dnsErr *net.DNSError
		opErr  *net.OpError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &Error{Kind: ErrTransport, Err: err}
	case errors.As(err, &dnsErr):
		return &Error{Kind: ErrConnection, Err: err}
	case errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout():
		return &Error{Kind: ErrConnection, Err: err}
	}
	return &Error{Kind: ErrTransport, Err: err}
}
