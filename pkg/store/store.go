// Package store persists named collections as whole JSON arrays.
//
// Every mutation rewrites the full collection: callers load the list,
// modify it in memory, and save it back. Backends only move opaque JSON
// documents; Collection handles encoding.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/JaimeStill/promptbench/pkg/lifecycle"
)

// Backend reads and writes raw collection documents by name.
type Backend interface {
	// Ensure creates the named collection as an empty list if it is absent.
	Ensure(ctx context.Context, name string) error
	// Read returns the raw document. Returns ErrNotFound when absent.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the document with data.
	Write(ctx context.Context, name string, data []byte) error
	// Location describes where documents live, for display.
	Location() string
}

// System is a Backend bound to a fixed set of collections.
type System interface {
	Backend
	// Start registers a startup hook that ensures every collection exists.
	Start(lc *lifecycle.Coordinator) error
	// EnsureAll creates every registered collection that is missing.
	EnsureAll(ctx context.Context) error
	// Collections lists the registered collection names.
	Collections() []string
}

type system struct {
	Backend
	names  []string
	logger *slog.Logger
}

// New binds backend to the given collection names.
func New(backend Backend, logger *slog.Logger, names ...string) System {
	return &system{
		Backend: backend,
		names:   names,
		logger:  logger.With("system", "store"),
	}
}

func (s *system) Collections() []string {
	return s.names
}

func (s *system) EnsureAll(ctx context.Context) error {
	var result *multierror.Error
	for _, name := range s.names {
		if err := s.Ensure(ctx, name); err != nil {
			result = multierror.Append(result, fmt.Errorf("ensure %s: %w", name, err))
		}
	}
	return result.ErrorOrNil()
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting store", "location", s.Location())

	lc.OnStartup(func() {
		if err := s.EnsureAll(lc.Context()); err != nil {
			s.logger.Error("store initialization failed", "error", err)
			return
		}
		s.logger.Info("store ready", "collections", s.names)
	})

	return nil
}
