// Package delivery defines the contract every transport entrypoint fulfils.
package delivery

import "context"

// Delivery is a long-running transport server (HTTP today, possibly more
// later). Serve blocks until the server stops or fails; shutdown is handled
// through the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
