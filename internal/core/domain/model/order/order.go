package order

import (
	"errors"
	"math"
	"time"

	"bloomify/internal/pkg/errs"
	"bloomify/internal/pkg/guard"
)

// DeliveryEstimate is added to the creation time to derive EstimatedDelivery.
const DeliveryEstimate = 30 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Contact groups the customer fields that are mandatory at creation.
type Contact struct {
	Customer string
	Email    string
	Phone    string
	Address  string
}

// Validate reports every empty field of c, joined.
func (c Contact) Validate() error {
	return errors.Join(
		required("address", c.Address),
		required("phone", c.Phone),
		required("customer", c.Customer),
		required("email", c.Email),
	)
}

// Order is a customer's food order.
//
// Order follows these invariants:
//   - id is assigned at creation and never changes
//   - customer, email, phone and address are non-empty at creation
//   - orderPrice and estimatedDelivery are derived once, at creation; later
//     patches may overwrite them but never trigger a recomputation
//
// The struct uses private fields so that only NewOrder and ApplyPatch mutate it.
type Order struct {
	id                string
	contact           Contact
	status            Status
	cart              Cart
	orderPrice        float64
	estimatedDelivery time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order, deriving its price from cart and its delivery
// estimate from now.
//
// Example:
//
//	o, err := order.NewOrder("ORD7K2Q9XZA", contact, order.StatusOrDefault(""), cart, time.Now())
//	if err != nil {
//	    // errors.Is(err, errs.ErrValueIsRequired) for missing contact fields
//	    // errors.Is(err, errs.ErrValueIsInvalid) when the cart total overflows
//	}
func NewOrder(id string, contact Contact, status Status, cart Cart, now time.Time) (*Order, error) {
	if err := errors.Join(required("id", id), contact.Validate()); err != nil {
		return nil, err
	}

	if status == "" {
		status = Pending
	}

	cart = cart.Clone()
	total := cart.Total()
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return nil, errs.NewValueIsInvalidError("orderPrice")
	}

	return &Order{
		id:                id,
		contact:           contact,
		status:            status,
		cart:              cart,
		orderPrice:        total,
		estimatedDelivery: now.Add(DeliveryEstimate),
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's identifier.
func (o *Order) ID() string {
	return o.id
}

// Contact returns the customer fields.
func (o *Order) Contact() Contact {
	return o.contact
}

// Status returns the current status.
func (o *Order) Status() Status {
	return o.status
}

// Cart returns a copy of the line items.
func (o *Order) Cart() Cart {
	return o.cart.Clone()
}

// OrderPrice returns the stored total price.
func (o *Order) OrderPrice() float64 {
	return o.orderPrice
}

// EstimatedDelivery returns the stored delivery estimate.
func (o *Order) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// Clone returns a deep copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	cp := *o
	cp.cart = o.cart.Clone()
	return &cp
}

// ApplyPatch merges p into the order according to policy. On error the order is
// left untouched.
func (o *Order) ApplyPatch(p Patch, policy PatchPolicy) error {
	if policy == StrictPatch {
		if err := p.checkStrict(o.id); err != nil {
			return err
		}
	}

	merged := o.Clone()
	p.mergeInto(merged)

	if policy == StrictPatch {
		if err := errors.Join(merged.contact.Validate(), required("status", string(merged.status))); err != nil {
			return err
		}
	}

	*o = *merged
	return nil
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
