// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, collections, attachments, outbound
// dispatch) that domain systems require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/pkg/database"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
	"github.com/JaimeStill/promptbench/pkg/lifecycle"
	"github.com/JaimeStill/promptbench/pkg/storage"
	"github.com/JaimeStill/promptbench/pkg/store"
)

// Collection names persisted by the store.
const (
	CollectionEndpoints = "endpoints"
	CollectionPrompts   = "prompts"
	CollectionHistory   = "history"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil unless the store runs on the postgres backend.
type Infrastructure struct {
	Lifecycle   *lifecycle.Coordinator
	Logger      *slog.Logger
	Database    database.System
	Store       store.System
	Attachments storage.System
	Dispatch    *dispatch.Client
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. It initializes all systems but does not start them; call Start
// separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit log destination.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger(&cfg.Log, w)

	var (
		db      database.System
		backend store.Backend
	)

	switch cfg.Store.Backend {
	case store.BackendPostgres:
		var err error
		db, err = database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		backend = store.NewPostgres(db.Connection())
	default:
		backend = store.NewFile(cfg.Store.Dir)
	}

	collections := store.New(
		backend,
		logger,
		CollectionEndpoints,
		CollectionPrompts,
		CollectionHistory,
	)

	attachments, err := storage.New(&cfg.Attachments, logger)
	if err != nil {
		return nil, fmt.Errorf("attachments init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:   lc,
		Logger:      logger,
		Database:    db,
		Store:       collections,
		Attachments: attachments,
		Dispatch:    dispatch.New(&cfg.Dispatch, logger),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if err := i.Store.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("store start failed: %w", err)
	}
	if err := i.Attachments.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("attachments start failed: %w", err)
	}
	return nil
}

// NewLogger builds the root slog logger from cfg.
func NewLogger(cfg *config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
