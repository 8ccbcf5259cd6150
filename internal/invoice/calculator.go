// Package invoice holds the client-side sales invoice draft and its pure
// total arithmetic.
//
// The arithmetic never rejects input: any non-numeric or missing field
// degrades to zero, keeping a half-typed form responsive. The server stays
// authoritative; these numbers are what the operator sees live while the
// draft is edited.
package invoice

import (
	"strconv"
	"strings"
)

// Amount parses a user-entered amount permissively: leading/trailing space
// is ignored and anything that does not parse as a float counts as 0.
func Amount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// LineTotal returns quantity times rate.
func LineTotal(quantity, rate float64) float64 {
	return quantity * rate
}

// Subtotal sums the line totals of the draft lines.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Total
	}
	return sum
}

// GrandTotal applies discount and other cost to the subtotal. Signs are
// deliberately unclamped: a negative discount acts as a surcharge, matching
// the backend's bookkeeping.
func GrandTotal(subtotal, discount, otherCost float64) float64 {
	return subtotal - discount + otherCost
}

// Due returns what remains after the paid amount. A negative result is an
// overpayment and is surfaced unmodified.
func Due(grandTotal, amountPaid float64) float64 {
	return grandTotal - amountPaid
}
