package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context) []Prompt
	Search(ctx context.Context, page pagination.PageRequest, filters Filters) *pagination.PageResult[Prompt]
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Save(ctx context.Context, content string) (*Prompt, error)
	AttachHistory(ctx context.Context, id uuid.UUID, historyID uuid.UUID) (*Prompt, error)
}
