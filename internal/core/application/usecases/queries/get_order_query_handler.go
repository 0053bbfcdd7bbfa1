package queries

import (
	"context"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
)

// GetOrderQueryHandler reads orders from the order store.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler backed by repo.
func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

// Handle returns the stored order exactly as created or last patched, or an
// errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.Get(ctx, query.OrderID())
}
