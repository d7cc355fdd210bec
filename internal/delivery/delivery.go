// Package delivery defines the contract shared by all transport frontends.
package delivery

import "context"

// Delivery is a transport frontend (HTTP server, worker, ...) that serves
// until its context is canceled or a fatal error occurs.
type Delivery interface {
	Serve(ctx context.Context) error
}
