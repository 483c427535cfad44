package endpoints

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/JaimeStill/promptbench/pkg/store"
)

type repo struct {
	mu         sync.Mutex
	collection *store.Collection[string]
	logger     *slog.Logger
}

// New creates the endpoint System over the named collection on backend.
func New(backend store.Backend, name string, logger *slog.Logger) System {
	logger = logger.With("system", "endpoints")
	return &repo{
		collection: store.NewCollection[string](backend, name, logger),
		logger:     logger,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) []string {
	return r.collection.Load(ctx)
}

func (r *repo) Register(ctx context.Context, url string) (bool, error) {
	if strings.TrimSpace(url) == "" {
		return false, ErrEmptyURL
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.collection.Load(ctx)
	if lo.Contains(existing, url) {
		return false, nil
	}

	if err := r.collection.Save(ctx, append(existing, url)); err != nil {
		return false, fmt.Errorf("register endpoint: %w", err)
	}

	r.logger.Info("endpoint registered", "url", url)
	return true, nil
}

func (r *repo) Delete(ctx context.Context, url string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.collection.Load(ctx)
	idx := lo.IndexOf(existing, url)
	if idx < 0 {
		return false, nil
	}

	if err := r.collection.Save(ctx, slices.Delete(existing, idx, idx+1)); err != nil {
		return false, fmt.Errorf("delete endpoint: %w", err)
	}

	r.logger.Info("endpoint deleted", "url", url)
	return true, nil
}
