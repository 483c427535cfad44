package routes

import "net/http"

// Route binds an HTTP method and a pattern relative to its group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// pattern renders the ServeMux pattern for the route under prefix.
func (r Route) pattern(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
