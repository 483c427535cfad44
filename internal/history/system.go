package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/pkg/pagination"
)

// System defines the public contract for history operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) *pagination.PageResult[Entry]
	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Save(ctx context.Context, cmd SaveCommand) (*Entry, error)
}
