package tester

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/promptbench/internal/endpoints"
	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
	"github.com/JaimeStill/promptbench/pkg/storage"
)

// Dispatcher sends one request to the target API.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) (*dispatch.Response, error)
}

// System defines the public contract for test submissions.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Defaults() Defaults
	Submit(ctx context.Context, sub Submission) (*Outcome, error)
	Probe(ctx context.Context) []ProbeResult
}

type tester struct {
	dispatcher  Dispatcher
	endpoints   endpoints.System
	prompts     prompts.System
	history     history.System
	attachments storage.System
	defaults    Defaults
	logger      *slog.Logger
}

// New creates the tester System.
func New(
	dispatcher Dispatcher,
	endpointsSystem endpoints.System,
	promptsSystem prompts.System,
	historySystem history.System,
	attachments storage.System,
	defaults Defaults,
	logger *slog.Logger,
) System {
	if defaults.ProbeLimit < 1 {
		defaults.ProbeLimit = 1
	}
	return &tester{
		dispatcher:  dispatcher,
		endpoints:   endpointsSystem,
		prompts:     promptsSystem,
		history:     historySystem,
		attachments: attachments,
		defaults:    defaults,
		logger:      logger.With("system", "tester"),
	}
}

func (t *tester) Handler(maxUploadSize int64) *Handler {
	return NewHandler(t, t.logger, maxUploadSize)
}

func (t *tester) Defaults() Defaults {
	return t.defaults
}
