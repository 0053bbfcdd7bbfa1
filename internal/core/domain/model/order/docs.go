// Package order provides the Order entity of the food ordering service.
//
// The package includes:
//   - Order: identity, customer contact, status, cart and the derived price and
//     delivery estimate
//   - Cart and CartItem: line items priced with decimal arithmetic
//   - Status: a free-form label with case-insensitive detection of "confirmed"
//   - Patch and PatchPolicy: shallow partial updates, lenient or strict
//
// Key business rules:
//   - customer, email, phone and address are required at creation
//   - orderPrice = sum(unitPrice * quantity) and estimatedDelivery = now + 30m,
//     both computed once at creation
//   - status defaults to "pending"; no transition rules are enforced
package order
