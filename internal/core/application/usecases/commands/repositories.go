// Package commands contains the order lifecycle operations that modify state.
// Implements the Command pattern for write operations: each command validates its
// input at construction and its handler persists the change, then hands
// notifications to the background so the caller never waits on a transport.
package commands

import (
	"context"
)

type (
	// IDGenerator issues identifiers for new orders.
	IDGenerator interface {
		Generate() string
	}

	// BackgroundRunner starts detached work that outlives the calling request.
	// background.Group is the production implementation.
	BackgroundRunner interface {
		Go(ctx context.Context, name string, fn func(ctx context.Context))
	}
)
