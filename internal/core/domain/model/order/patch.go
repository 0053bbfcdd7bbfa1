package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bloomify/internal/pkg/errs"
)

// PatchPolicy selects how strictly a partial update is checked.
type PatchPolicy int

const (
	// LenientPatch overwrites every known field present in the patch without
	// validation. The id and unknown fields are ignored.
	LenientPatch PatchPolicy = iota

	// StrictPatch rejects unknown fields and id changes, and requires the merged
	// order to keep non-empty contact fields and status.
	StrictPatch
)

// ParsePatchPolicy maps the configuration flag to a policy.
func ParsePatchPolicy(strict bool) PatchPolicy {
	if strict {
		return StrictPatch
	}
	return LenientPatch
}

func (p PatchPolicy) String() string {
	if p == StrictPatch {
		return "strict"
	}
	return "lenient"
}

// Patch is a shallow partial update. A nil field is left unchanged.
type Patch struct {
	ID                *string
	Customer          *string
	Email             *string
	Phone             *string
	Address           *string
	Status            *string
	Cart              *Cart
	OrderPrice        *float64
	EstimatedDelivery *time.Time

	// UnknownFields lists keys the client sent that do not belong to an order.
	UnknownFields []string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Customer == nil && p.Email == nil && p.Phone == nil && p.Address == nil &&
		p.Status == nil && p.Cart == nil && p.OrderPrice == nil && p.EstimatedDelivery == nil
}

func (p Patch) checkStrict(id string) error {
	var problems []error
	if p.ID != nil && *p.ID != id {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"id", fmt.Errorf("%q cannot replace %q", *p.ID, id)))
	}
	if len(p.UnknownFields) > 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"patch", fmt.Errorf("unknown fields: %s", strings.Join(p.UnknownFields, ", "))))
	}
	return errors.Join(problems...)
}

func (p Patch) mergeInto(o *Order) {
	if p.Customer != nil {
		o.contact.Customer = *p.Customer
	}
	if p.Email != nil {
		o.contact.Email = *p.Email
	}
	if p.Phone != nil {
		o.contact.Phone = *p.Phone
	}
	if p.Address != nil {
		o.contact.Address = *p.Address
	}
	if p.Status != nil {
		o.status = Status(*p.Status)
	}
	if p.Cart != nil {
		o.cart = p.Cart.Clone()
	}
	if p.OrderPrice != nil {
		o.orderPrice = *p.OrderPrice
	}
	if p.EstimatedDelivery != nil {
		o.estimatedDelivery = *p.EstimatedDelivery
	}
}
