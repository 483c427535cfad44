// Package endpoints manages the registered list of target API base URLs.
package endpoints

import "context"

// System defines the public contract for endpoint registration.
type System interface {
	Handler() *Handler

	// List returns registered endpoints in insertion order.
	List(ctx context.Context) []string
	// Register appends url unless it is already present verbatim.
	// Returns false without writing when it is a duplicate.
	Register(ctx context.Context, url string) (bool, error)
	// Delete removes url. Returns false without writing when it is absent.
	Delete(ctx context.Context, url string) (bool, error)
}
