package dashboard

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/internal/tester"
	"github.com/JaimeStill/promptbench/pkg/pagination"
)

// SaveLabel is the caption of the prompt save button.
type SaveLabel string

const (
	SaveLabelSave    SaveLabel = "save"
	SaveLabelAlready SaveLabel = "already"
	SaveLabelSaved   SaveLabel = "saved"
)

// SaveLabelFor derives the save button caption. A prompt just written is
// "saved"; content already stored is "already"; anything else is "save".
func SaveLabelFor(content string, existing []prompts.Prompt, justSaved bool) SaveLabel {
	switch {
	case justSaved:
		return SaveLabelSaved
	case content != "" && prompts.Exists(content, existing):
		return SaveLabelAlready
	}
	return SaveLabelSave
}

// HomeView backs the landing page.
type HomeView struct {
	BaseURL      string
	DataLocation string
	Endpoints    int
	Prompts      int
	History      int
}

// TesterForm echoes the submitted form back into the page.
type TesterForm struct {
	BaseURL  string
	Path     string
	Method   string
	PromptID string
	Prompt   string
	DataType string
	Text     string
	JSON     string
	Record   bool
}

// TesterView backs the tester page.
type TesterView struct {
	Form      TesterForm
	FullURL   string
	BaseURLs  []string
	Prompts   []prompts.Prompt
	SaveLabel SaveLabel
	Outcome   *tester.Outcome
}

// SettingsView backs the settings page. ShowEndpoints toggles the list.
type SettingsView struct {
	DefaultBaseURL string
	Endpoints      []string
	ShowEndpoints  bool
}

// PromptsView backs the prompt listing.
type PromptsView struct {
	Page *pagination.PageResult[prompts.Prompt]
}

// HistoryView backs the history listing.
type HistoryView struct {
	Page    *pagination.PageResult[history.Entry]
	Status  string
	Search  string
	Pages   []int
	HasPrev bool
	HasNext bool
}

// HistoryDetailView backs a single history entry.
type HistoryDetailView struct {
	Entry    *history.Entry
	Response json.RawMessage
	Prompts  []prompts.Prompt
}

func relatedPrompts(all []prompts.Prompt, id uuid.UUID) []prompts.Prompt {
	return lo.Filter(all, func(p prompts.Prompt, _ int) bool {
		return lo.Contains(p.RelatedHistory, id)
	})
}

func pageNumbers(total int) []int {
	out := make([]int, total)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
