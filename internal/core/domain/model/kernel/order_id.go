package kernel

import (
	"fmt"
	"strings"

	"bloomify/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// OrderIDPrefix starts every generated order identifier.
	OrderIDPrefix = "ORD"

	// DefaultOrderIDLength is the number of random characters after the prefix.
	// At 36^8 combinations a demo-scale store sees collisions with negligible
	// probability; the store itself does not check for duplicates.
	DefaultOrderIDLength = 8

	maxOrderIDLength = 32
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// unbiasedLimit is the largest multiple of len(orderIDAlphabet) that fits in a byte.
// Bytes at or above it are discarded so every character is equally likely.
const unbiasedLimit = 252

// OrderIDGenerator produces short, human-readable order identifiers such as
// "ORD7K2Q9XZA": a fixed prefix followed by upper-case base36 characters.
//
// Randomness is taken from version 4 UUIDs. Uniqueness is probabilistic only;
// no registry of issued identifiers is kept.
//
// OrderIDGenerator is safe for concurrent use.
type OrderIDGenerator struct {
	length int
	source func() uuid.UUID
}

// NewOrderIDGenerator creates a generator emitting length random characters after
// OrderIDPrefix. Length must be between 1 and 32.
func NewOrderIDGenerator(length int) (*OrderIDGenerator, error) {
	if length <= 0 || length > maxOrderIDLength {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order id length",
			fmt.Errorf("%d is not in [1, %d]", length, maxOrderIDLength),
		)
	}

	return &OrderIDGenerator{
		length: length,
		source: uuid.New,
	}, nil
}

// Generate returns a new order identifier.
func (g *OrderIDGenerator) Generate() string {
	var b strings.Builder
	b.Grow(len(OrderIDPrefix) + g.length)
	b.WriteString(OrderIDPrefix)

	remaining := g.length
	for remaining > 0 {
		random := g.source()
		for i, octet := range random {
			// bytes 6 and 8 carry the UUID version and variant bits
			if i == 6 || i == 8 || octet >= unbiasedLimit {
				continue
			}
			b.WriteByte(orderIDAlphabet[int(octet)%len(orderIDAlphabet)])
			remaining--
			if remaining == 0 {
				break
			}
		}
	}

	return b.String()
}
