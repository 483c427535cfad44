package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/promptbench/pkg/pagination"
	"github.com/JaimeStill/promptbench/pkg/store"
)

type repo struct {
	mu         sync.Mutex
	collection *store.Collection[Prompt]
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing the System interface.
func New(
	backend store.Backend,
	name string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	logger = logger.With("system", "prompts")
	return &repo{
		collection: store.NewCollection[Prompt](backend, name, logger),
		logger:     logger,
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context) []Prompt {
	return r.load(ctx)
}

// Search pages over matching prompts, newest first.
func (r *repo) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) *pagination.PageResult[Prompt] {
	page.Normalize(r.pagination)

	items := filters.Apply(r.load(ctx))
	if page.Search != nil {
		term := page.Search
		items = lo.Filter(items, func(p Prompt, _ int) bool {
			return containsFold(p.Name, term) || containsFold(p.Content, term)
		})
	}
	slices.Reverse(items)

	result := pagination.Paginate(items, page)
	return &result
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, ok := lo.Find(r.load(ctx), func(p Prompt) bool {
		return p.ID == id
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *repo) Save(ctx context.Context, content string) (*Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.load(ctx)

	p, err := Compose(content, existing)
	if err != nil {
		return nil, err
	}

	if err := r.collection.Save(ctx, append(existing, p)); err != nil {
		return nil, fmt.Errorf("save prompt: %w", err)
	}

	r.logger.Info("prompt saved", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repo) AttachHistory(ctx context.Context, id uuid.UUID, historyID uuid.UUID) (*Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.load(ctx)
	_, idx, ok := lo.FindIndexOf(existing, func(p Prompt) bool {
		return p.ID == id
	})
	if !ok {
		return nil, ErrNotFound
	}

	p := &existing[idx]
	if !lo.Contains(p.RelatedHistory, historyID) {
		p.RelatedHistory = append(p.RelatedHistory, historyID)
		if err := r.collection.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("attach history: %w", err)
		}
		r.logger.Info("history attached to prompt", "id", id, "history_id", historyID)
	}

	out := *p
	return &out, nil
}

// load reads the collection, replacing missing related_history lists from
// older records with empty ones.
func (r *repo) load(ctx context.Context) []Prompt {
	items := r.collection.Load(ctx)
	for i := range items {
		if items[i].RelatedHistory == nil {
			items[i].RelatedHistory = []uuid.UUID{}
		}
	}
	return items
}
