package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/promptbench/pkg/isotime"
	"github.com/JaimeStill/promptbench/pkg/pagination"
	"github.com/JaimeStill/promptbench/pkg/store"
)

type repo struct {
	mu         sync.Mutex
	collection *store.Collection[Entry]
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a history repository implementing the System interface.
func New(
	backend store.Backend,
	name string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	logger = logger.With("system", "history")
	return &repo{
		collection: store.NewCollection[Entry](backend, name, logger),
		logger:     logger,
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// List pages over matching entries, newest first. The page search term
// matches the prompt text.
func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) *pagination.PageResult[Entry] {
	page.Normalize(r.pagination)

	if page.Search != nil && filters.Prompt == nil {
		filters.Prompt = page.Search
	}
	items := filters.Apply(r.collection.Load(ctx))

	slices.Reverse(items)
	slices.SortStableFunc(items, func(a, b Entry) int {
		return b.Timestamp.Compare(a.Timestamp.Time)
	})

	result := pagination.Paginate(items, page)
	return &result
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, ok := lo.Find(r.collection.Load(ctx), func(e Entry) bool {
		return e.ID == id
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*Entry, error) {
	if strings.TrimSpace(cmd.Status) == "" {
		return nil, ErrEmptyStatus
	}

	response := cmd.Response
	if len(bytes.TrimSpace(response)) == 0 {
		response = json.RawMessage("null")
	}
	if !json.Valid(response) {
		return nil, ErrInvalidResponse
	}

	entry := Entry{
		ID:        uuid.New(),
		Timestamp: isotime.Now(),
		Prompt:    cmd.Prompt,
		ImagePath: cmd.ImagePath,
		Response:  response,
		Status:    cmd.Status,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.collection.Load(ctx)
	if err := r.collection.Save(ctx, append(existing, entry)); err != nil {
		return nil, fmt.Errorf("save history entry: %w", err)
	}

	r.logger.Info("history entry saved", "id", entry.ID, "status", entry.Status)
	return &entry, nil
}
