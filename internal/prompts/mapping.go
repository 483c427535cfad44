package prompts

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Filters contains optional filtering criteria for prompt listings.
// Name and Content use case-insensitive contains matching.
type Filters struct {
	Name    *string `json:"name,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Apply returns the prompts matching every set filter.
func (f Filters) Apply(items []Prompt) []Prompt {
	return lo.Filter(items, func(p Prompt, _ int) bool {
		return containsFold(p.Name, f.Name) && containsFold(p.Content, f.Content)
	})
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if c := values.Get("content"); c != "" {
		f.Content = &c
	}

	return f
}

func containsFold(s string, sub *string) bool {
	if sub == nil {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(*sub))
}
