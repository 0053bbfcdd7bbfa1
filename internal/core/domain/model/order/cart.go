package order

import (
	"maps"

	"github.com/shopspring/decimal"
)

// CartItem is one line of an order. Only UnitPrice and Quantity take part in
// pricing; Attributes keeps whatever else the client sent (name, pizzaId, ...)
// so it can be echoed back unchanged.
type CartItem struct {
	UnitPrice  float64
	Quantity   float64
	Attributes map[string]any
}

// LineTotal returns UnitPrice * Quantity computed in decimal arithmetic.
func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.UnitPrice).Mul(decimal.NewFromFloat(i.Quantity))
}

// Fields flattens the item into a single map, the shape clients send.
func (i CartItem) Fields() map[string]any {
	fields := make(map[string]any, len(i.Attributes)+2)
	maps.Copy(fields, i.Attributes)
	fields["unitPrice"] = i.UnitPrice
	fields["quantity"] = i.Quantity
	return fields
}

func (i CartItem) clone() CartItem {
	i.Attributes = maps.Clone(i.Attributes)
	return i
}

// Cart is the ordered sequence of line items.
type Cart []CartItem

// Total sums the line totals. An empty cart totals 0; a sum beyond the
// float64 range comes back as ±Inf.
func (c Cart) Total() float64 {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.LineTotal())
	}
	return total.InexactFloat64()
}

// Clone returns a deep copy; a nil cart clones to an empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for i, item := range c {
		out[i] = item.clone()
	}
	return out
}
