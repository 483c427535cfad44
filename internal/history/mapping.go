package history

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Filters contains optional filtering criteria for history listings.
// Status uses exact matching; Prompt uses case-insensitive contains matching.
type Filters struct {
	Status *string `json:"status,omitempty"`
	Prompt *string `json:"prompt,omitempty"`
}

// Apply returns the entries matching every set filter.
func (f Filters) Apply(items []Entry) []Entry {
	return lo.Filter(items, func(e Entry, _ int) bool {
		if f.Status != nil && e.Status != *f.Status {
			return false
		}
		if f.Prompt != nil {
			if e.Prompt == nil {
				return false
			}
			return strings.Contains(strings.ToLower(*e.Prompt), strings.ToLower(*f.Prompt))
		}
		return true
	})
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if p := values.Get("prompt"); p != "" {
		f.Prompt = &p
	}

	return f
}
