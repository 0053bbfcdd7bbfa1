package order

import "strings"

// Status is the free-form lifecycle label of an order.
//
// Any string is accepted and any status may follow any other; no transition
// table is enforced. Two values carry meaning for the service:
//
//	Pending   - assigned to new orders that arrive without a status
//	Confirmed - compared case-insensitively, triggers the customer confirmation email
type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
)

// StatusOrDefault returns Pending for an empty value and s otherwise.
func StatusOrDefault(s string) Status {
	if s == "" {
		return Pending
	}
	return Status(s)
}

// IsConfirmed reports whether s equals Confirmed ignoring case, so "CONFIRMED"
// and "Confirmed" both qualify.
func (s Status) IsConfirmed() bool {
	return strings.EqualFold(string(s), string(Confirmed))
}

func (s Status) String() string {
	return string(s)
}
