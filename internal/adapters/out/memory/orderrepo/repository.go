// Package orderrepo provides the process-lifetime order store.
// Orders live in an in-memory slice; the store is empty after every restart.
package orderrepo

import (
	"context"
	"sync"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/pkg/errs"
)

// MemoryOrderRepository implements ports.OrderRepository on a slice guarded by a
// read/write mutex. Each method is atomic; returned orders are copies.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []*order.Order
}

// NewMemoryOrderRepository creates an empty store.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// Add appends an order. Ids are not checked for duplicates.
func (r *MemoryOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, aggregate.Clone())
	return nil
}

// Get retrieves an order by ID.
func (r *MemoryOrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.findIndexByID(id)
	if idx < 0 {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	return r.orders[idx].Clone(), nil
}

// Update applies mutate to a copy of the stored order under the write lock and
// stores the copy when mutate succeeds.
func (r *MemoryOrderRepository) Update(
	_ context.Context,
	id string,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findIndexByID(id)
	if idx < 0 {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	updated := r.orders[idx].Clone()
	if err := mutate(updated); err != nil {
		return nil, err
	}

	r.orders[idx] = updated
	return updated.Clone(), nil
}

// Len returns the number of stored orders.
func (r *MemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders)
}

// findIndexByID scans linearly; callers hold the lock.
func (r *MemoryOrderRepository) findIndexByID(id string) int {
	for i, o := range r.orders {
		if o.ID() == id {
			return i
		}
	}
	return -1
}
