// Package ports defines the contracts between the order core and its adapters.
// These interfaces establish the seams for the in-memory store, the mail
// transport and the real-time channel, enabling dependency inversion and testability.
package ports

import (
	"context"

	"bloomify/internal/core/domain/model/order"
)

// OrderRepository defines the storage contract for orders.
//
// Implementations must make each call atomic with respect to concurrent callers
// and must not hand out orders that alias their internal state.
type OrderRepository interface {
	// Add appends a new order. No duplicate-id check is performed.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with the given id or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*order.Order, error)

	// Update runs mutate on the stored order and keeps the result if mutate
	// succeeds. Returns an errs.ObjectNotFoundError when id is absent.
	//
	// Example:
	//   updated, err := repo.Update(ctx, id, func(o *order.Order) error {
	//       return o.ApplyPatch(patch, order.LenientPatch)
	//   })
	Update(ctx context.Context, id string, mutate func(*order.Order) error) (*order.Order, error)
}
