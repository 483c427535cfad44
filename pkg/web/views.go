// Package web renders server-side pages from embedded Go templates and
// serves embedded static assets.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"net/http"
	"path"
	"strings"
)

// ViewDef defines a page with its route, template file, title, and nav key.
type ViewDef struct {
	Route    string
	Template string
	Title    string
	Nav      string
}

// Flash is a one-shot status message shown above page content.
type Flash struct {
	Level   string
	Message string
}

// ViewData contains the data passed to page templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	Nav      string
	BasePath string
	Flash    *Flash
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
type TemplateSet struct {
	views    map[string]*template.Template
	layout   string
	basePath string
}

// NewTemplateSet parses the layout templates matching layoutGlob once, then
// clones them for each view under viewDir. funcs extend the default helpers.
func NewTemplateSet(
	fsys fs.FS,
	layoutGlob string,
	viewDir string,
	layout string,
	basePath string,
	funcs template.FuncMap,
	views []ViewDef,
) (*TemplateSet, error) {
	all := defaultFuncs(basePath)
	maps.Copy(all, funcs)

	layouts, err := template.New(layout).Funcs(all).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewSub, err := fs.Sub(fsys, viewDir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", v.Template, err)
		}
		parsed[v.Template] = t
	}

	return &TemplateSet{
		views:    parsed,
		layout:   layout,
		basePath: basePath,
	}, nil
}

// BasePath returns the URL prefix the pages are mounted under.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes view inside the layout and writes it with status. The page
// is rendered to a buffer first so template errors never produce a partial page.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, view ViewDef, data ViewData) error {
	t, ok := ts.views[view.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", view.Template)
	}

	data.Title = view.Title
	data.Nav = view.Nav
	data.BasePath = ts.basePath

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, ts.layout, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// PageHandler returns an HTTP handler that renders view with no data.
func (ts *TemplateSet) PageHandler(view ViewDef) http.HandlerFunc {
	return ts.StatusHandler(view, http.StatusOK)
}

// StatusHandler returns an HTTP handler that renders view with status.
func (ts *TemplateSet) StatusHandler(view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, view, ViewData{}); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

func defaultFuncs(basePath string) template.FuncMap {
	return template.FuncMap{
		"url": func(parts ...string) string {
			return path.Join(append([]string{basePath}, parts...)...)
		},
		"pretty": prettyJSON,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"truncate": func(n int, s string) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "…"
		},
	}
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
