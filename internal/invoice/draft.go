package invoice

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Line is one product row of a draft. Total is kept equal to
// Quantity * Rate by the draft's mutators.
type Line struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name" validate:"required"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	Rate      float64 `json:"rate" validate:"gte=0"`
	Total     float64 `json:"total"`
}

// Draft is the unsaved client-side representation of a sale. It exists only
// until submission or abandonment and is never persisted as such.
type Draft struct {
	ID            string  `json:"-"` // local correlation id, not sent
	CustomerID    int64   `json:"customerId" validate:"required"`
	CustomerName  string  `json:"customerName"`
	Date          string  `json:"date" validate:"required"`
	Lines         []Line  `json:"lines" validate:"min=1,dive"`
	Discount      float64 `json:"discount"`
	OtherCost     float64 `json:"otherCost"`
	AmountPaid    float64 `json:"amountPaid"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=Cash Bank 'Mobile Banking'"`
}

// PaymentMethods are the accepted payment method values.
var PaymentMethods = []string{"Cash", "Bank", "Mobile Banking"}

var validate = validator.New()

// NewDraft starts an empty draft for the given customer and date.
func NewDraft(customerID int64, customerName, date string) *Draft {
	return &Draft{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		CustomerName:  customerName,
		Date:          date,
		PaymentMethod: PaymentMethods[0],
	}
}

// AddLine appends a product row, computing its total.
func (d *Draft) AddLine(productID int64, name, unit string, quantity, rate float64) {
	d.Lines = append(d.Lines, Line{
		ProductID: productID,
		Name:      name,
		Unit:      unit,
		Quantity:  quantity,
		Rate:      rate,
		Total:     LineTotal(quantity, rate),
	})
}

// RemoveLine deletes the row at idx; out-of-range indexes are ignored.
func (d *Draft) RemoveLine(idx int) {
	if idx < 0 || idx >= len(d.Lines) {
		return
	}
	d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
}

// SetQuantity updates a row's quantity and recomputes its total.
func (d *Draft) SetQuantity(idx int, quantity float64) {
	if idx < 0 || idx >= len(d.Lines) {
		return
	}
	d.Lines[idx].Quantity = quantity
	d.Lines[idx].Total = LineTotal(quantity, d.Lines[idx].Rate)
}

// SetRate updates a row's rate and recomputes its total.
func (d *Draft) SetRate(idx int, rate float64) {
	if idx < 0 || idx >= len(d.Lines) {
		return
	}
	d.Lines[idx].Rate = rate
	d.Lines[idx].Total = LineTotal(d.Lines[idx].Quantity, rate)
}

// Totals is the live computed summary of a draft.
type Totals struct {
	Subtotal   float64
	GrandTotal float64
	Due        float64
}

// Totals computes the draft's current subtotal, grand total and due amount.
func (d *Draft) Totals() Totals {
	sub := Subtotal(d.Lines)
	grand := GrandTotal(sub, d.Discount, d.OtherCost)
	return Totals{
		Subtotal:   sub,
		GrandTotal: grand,
		Due:        Due(grand, d.AmountPaid),
	}
}

// Validate runs the required-field checks performed before any network call.
// It returns a validator.ValidationErrors on failure.
func (d *Draft) Validate() error {
	return validate.Struct(d)
}
