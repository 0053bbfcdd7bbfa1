package commands

import (
	"context"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
)

// PatchOrderCommandHandler merges partial updates into stored orders.
// Derived fields are never recomputed; strictness follows the configured policy.
type PatchOrderCommandHandler struct {
	repo   ports.OrderRepository
	policy order.PatchPolicy
}

// NewPatchOrderCommandHandler creates a handler applying patches under policy.
func NewPatchOrderCommandHandler(repo ports.OrderRepository, policy order.PatchPolicy) PatchOrderCommandHandler {
	return PatchOrderCommandHandler{
		repo:   repo,
		policy: policy,
	}
}

// Handle returns the merged order, an errs.ObjectNotFoundError for an unknown id,
// or a validation error from a strict policy.
func (h *PatchOrderCommandHandler) Handle(ctx context.Context, cmd PatchOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	patch := cmd.Patch()
	return h.repo.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.ApplyPatch(patch, h.policy)
	})
}
