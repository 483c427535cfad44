package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Collection is a typed view over one named document holding a JSON array.
type Collection[T any] struct {
	backend Backend
	name    string
	logger  *slog.Logger
}

// NewCollection binds a typed collection to name on backend.
func NewCollection[T any](backend Backend, name string, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		name:    name,
		logger:  logger.With("collection", name),
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns every record. A missing or unreadable document yields an
// empty list; the failure is logged, not returned.
func (c *Collection[T]) Load(ctx context.Context) []T {
	data, err := c.backend.Read(ctx, c.name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("collection read failed", "error", err)
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warn("collection is not a valid JSON list", "error", err)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

// Save overwrites the document with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Write(ctx, c.name, data); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

// Encode renders records as an indented JSON array without HTML escaping.
// A nil slice encodes as [].
func Encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
