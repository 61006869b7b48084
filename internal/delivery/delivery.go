// Package delivery defines the contract every transport server fulfils.
package delivery

import "context"

// Delivery is a running transport (HTTP today). Serve blocks until the
// server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
