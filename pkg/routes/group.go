// Package routes declares HTTP routes as nested prefix groups and registers
// them on a standard ServeMux.
package routes

import "net/http"

// Group collects routes and child groups under a shared prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Patterns lists the fully prefixed ServeMux patterns of the group tree.
func (g Group) Patterns() []string {
	var out []string
	g.walk("", func(pattern string, _ func(http.ResponseWriter, *http.Request)) {
		out = append(out, pattern)
	})
	return out
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		g.walk("", mux.HandleFunc)
	}
}

func (g Group) walk(parent string, visit func(string, func(http.ResponseWriter, *http.Request))) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		visit(r.pattern(prefix), r.Handler)
	}
	for _, child := range g.Children {
		child.walk(prefix, visit)
	}
}
