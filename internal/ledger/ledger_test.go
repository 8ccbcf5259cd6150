package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCustomerPayment(t *testing.T) {
	got := ApplyCustomerPayment(5000, 3000)
	assert.Equal(t, 2000.0, got.NewDue)
	assert.False(t, got.Overpaid)

	exact := ApplyCustomerPayment(5000, 5000)
	assert.Equal(t, 0.0, exact.NewDue)
	assert.False(t, exact.Overpaid)

	over := ApplyCustomerPayment(5000, 6000)
	assert.Equal(t, -1000.0, over.NewDue)
	assert.True(t, over.Overpaid)
}

func TestAllocateShipment(t *testing.T) {
	// Payment retires the old due first, the remainder offsets the new
	// purchase, labor and transport stay out of the running balance.
	got := AllocateShipment(1000, 2000, 100, 50, 1500)

	assert.Equal(t, 1000.0, got.PaidToExisting)
	assert.Equal(t, 1500.0, got.DueFromPurchase)
	assert.Equal(t, 1500.0, got.NewSupplierDue)
	assert.Equal(t, 2150.0, got.ShipmentTotal)
	assert.Equal(t, 650.0, got.ShipmentDue)
}

func TestAllocateShipmentNoExistingDue(t *testing.T) {
	got := AllocateShipment(0, 2000, 100, 50, 500)

	assert.Equal(t, 0.0, got.PaidToExisting)
	assert.Equal(t, 1500.0, got.DueFromPurchase)
	assert.Equal(t, 1500.0, got.NewSupplierDue)
	assert.Equal(t, 1650.0, got.ShipmentDue)
}

func TestAllocateShipmentOverpaid(t *testing.T) {
	// Paying more than old due plus purchase clears the running balance;
	// the purchase contribution never goes negative.
	got := AllocateShipment(500, 1000, 200, 100, 2000)

	assert.Equal(t, 500.0, got.PaidToExisting)
	assert.Equal(t, 0.0, got.DueFromPurchase)
	assert.Equal(t, 0.0, got.NewSupplierDue)
	// The shipment's own record may still show a negative due (overpaid).
	assert.Equal(t, -700.0, got.ShipmentDue)
}

func TestAllocateShipmentNoPayment(t *testing.T) {
	got := AllocateShipment(1000, 2000, 0, 0, 0)

	assert.Equal(t, 0.0, got.PaidToExisting)
	assert.Equal(t, 2000.0, got.DueFromPurchase)
	assert.Equal(t, 3000.0, got.NewSupplierDue)
	assert.Equal(t, 2000.0, got.ShipmentDue)
}
