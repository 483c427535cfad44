package api

import (
	"github.com/JaimeStill/promptbench/internal/endpoints"
	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/infrastructure"
	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/internal/tester"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Endpoints endpoints.System
	Prompts   prompts.System
	History   history.System
	Tester    tester.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	endpointsSystem := endpoints.New(
		runtime.Store,
		infrastructure.CollectionEndpoints,
		runtime.Logger,
	)

	promptsSystem := prompts.New(
		runtime.Store,
		infrastructure.CollectionPrompts,
		runtime.Logger,
		runtime.Pagination,
	)

	historySystem := history.New(
		runtime.Store,
		infrastructure.CollectionHistory,
		runtime.Logger,
		runtime.Pagination,
	)

	testerSystem := tester.New(
		runtime.Dispatch,
		endpointsSystem,
		promptsSystem,
		historySystem,
		runtime.Attachments,
		runtime.Tester,
		runtime.Logger,
	)

	return &Domain{
		Endpoints: endpointsSystem,
		Prompts:   promptsSystem,
		History:   historySystem,
		Tester:    testerSystem,
	}
}
