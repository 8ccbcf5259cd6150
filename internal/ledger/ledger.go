// Package ledger computes how a payment is allocated against an existing due
// balance. All functions are pure; the backend re-derives the authoritative
// balances and the results here are optimistic display values.
package ledger

import "math"

// CustomerPayment is the result of applying a due payment to a customer.
type CustomerPayment struct {
	// NewDue is the balance after payment. Zero or negative on full payment
	// or overpayment.
	NewDue float64

	// Overpaid reports that the payment exceeds the due; the view asks for
	// confirmation before submitting such a payment.
	Overpaid bool
}

// ApplyCustomerPayment reduces a customer's due by the paid amount.
// Overpayment is allowed (after confirmation) and yields a negative due.
func ApplyCustomerPayment(existingDue, paid float64) CustomerPayment {
	return CustomerPayment{
		NewDue:   existingDue - paid,
		Overpaid: paid > existingDue,
	}
}

// ShipmentAllocation is the outcome of recording a supplier shipment payment.
//
// The payment first retires any pre-existing supplier due; only the remainder
// offsets the new purchase amount. Labor and transport costs never enter the
// supplier's running due balance, they belong to the shipment record alone.
type ShipmentAllocation struct {
	// PaidToExisting is the part of the payment that retired old due.
	PaidToExisting float64

	// DueFromPurchase is the unpaid part of the new purchase amount.
	DueFromPurchase float64

	// NewSupplierDue is the supplier's running due after this shipment.
	NewSupplierDue float64

	// ShipmentTotal is purchase + labor + transport.
	ShipmentTotal float64

	// ShipmentDue is the shipment record's own due:
	// ShipmentTotal - paid. Unrelated to the running supplier due.
	ShipmentDue float64
}

// AllocateShipment applies a shipment payment against the supplier's
// existing due and the new purchase.
func AllocateShipment(existingDue, purchase, labor, transport, paid float64) ShipmentAllocation {
	payToExisting := math.Min(paid, existingDue)
	remainingExistingDue := existingDue - payToExisting
	remainder := paid - payToExisting
	dueFromPurchase := math.Max(0, purchase-remainder)

	total := purchase + labor + transport

	return ShipmentAllocation{
		PaidToExisting:  payToExisting,
		DueFromPurchase: dueFromPurchase,
		NewSupplierDue:  remainingExistingDue + dueFromPurchase,
		ShipmentTotal:   total,
		ShipmentDue:     total - paid,
	}
}
