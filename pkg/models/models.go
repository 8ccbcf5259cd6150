// Package models defines the records exchanged with the shop backend.
//
// The client never owns authoritative state: every struct here mirrors the
// latest server response for the entity. Monetary fields are float64 taka
// amounts, matching the backend's JSON numbers.
package models

import "time"

// Customer is a buyer with a running due balance.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	DueAmount float64   `json:"dueAmount"` // outstanding balance the customer owes the shop
	CreatedAt time.Time `json:"createdAt"`
}

// Supplier is a vendor the shop buys from. DueAmount is what the shop owes.
type Supplier struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	ContactPerson string  `json:"contactPerson"`
	ContactNumber string  `json:"contactNumber"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	DueAmount     float64 `json:"dueAmount"`
}

// Product is a stock item. Stock is authoritative on the server and should be
// re-fetched before quantity edits in an invoice line.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ProductCode  string  `json:"productCode"`
	Stock        float64 `json:"stock"` // decimal quantity, e.g. 3.5 tons
	Unit         string  `json:"unit"`
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	BuyingPrice  float64 `json:"buyingPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Warehouse    string  `json:"warehouse"`
	SupplierName string  `json:"supplierName"`
	Date         string  `json:"date"` // yyyy-mm-dd
}

// Shipment is a supplier delivery/purchase event with its own cost breakdown
// and payment. TotalAmount = PurchaseAmount + LaborCost + TransportCost.
// DueAmount here belongs to the shipment record itself, not to the supplier's
// running due balance.
type Shipment struct {
	ID             int64   `json:"id,omitempty"`
	SupplierName   string  `json:"supplierName"`
	Date           string  `json:"date"`
	PurchaseAmount float64 `json:"purchaseAmount"`
	LaborCost      float64 `json:"laborCost"`
	TransportCost  float64 `json:"transportCost"`
	PaidAmount     float64 `json:"paidAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	DueAmount      float64 `json:"dueAmount"`
}

// User is an administrable account. The "ADMIN" role gates user management.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Enabled   bool      `json:"enabled"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

// PrimaryRole returns the first role, or "USER" when none are set.
func (u User) PrimaryRole() string {
	if len(u.Roles) > 0 {
		return u.Roles[0]
	}
	return "USER"
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == "ADMIN" {
			return true
		}
	}
	return false
}

// SaleLine is one product row of a submitted or returned sale.
type SaleLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	Rate      float64 `json:"rate"`
	Total     float64 `json:"total"`
}

// Sale is the backend's record of a completed sale. The server's SaleCode and
// computed totals take precedence over any client-side arithmetic.
type Sale struct {
	ID            int64      `json:"id"`
	SaleCode      string     `json:"saleCode"`
	CustomerID    int64      `json:"customerId"`
	CustomerName  string     `json:"customerName"`
	Date          string     `json:"date"`
	Lines         []SaleLine `json:"lines"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	OtherCost     float64    `json:"otherCost"`
	GrandTotal    float64    `json:"grandTotal"`
	AmountPaid    float64    `json:"amountPaid"`
	DueAmount     float64    `json:"dueAmount"`
	PaymentMethod string     `json:"paymentMethod"`
}

// PaymentRecord is one row of a customer's payment history.
type PaymentRecord struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customerId"`
	CustomerName string  `json:"customerName"`
	InvoiceNo    string  `json:"invoiceNo"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Paid         float64 `json:"paid"`
	Due          float64 `json:"due"`
	Status       string  `json:"status"` // Paid, Partial, Unpaid
}

// PnLReport is the backend's profit-and-loss aggregation for a date range.
type PnLReport struct {
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	TotalSales   float64 `json:"totalSales"`
	TotalCost    float64 `json:"totalCost"`
	TotalExpense float64 `json:"totalExpense"`
	Profit       float64 `json:"profit"`
}
