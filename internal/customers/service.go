// Package customers wraps the backend's customer endpoints: CRUD, search,
// paged payment history, and due payments.
package customers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"steeldesk/internal/gateway"
	"steeldesk/internal/ledger"
	"steeldesk/internal/logger"
	"steeldesk/pkg/models"
)

// ErrOverpayment is returned when a payment exceeds the customer's due and
// the caller has not confirmed it. Overpayment is allowed after confirmation
// and produces a zero or negative due.
var ErrOverpayment = errors.New("payment exceeds due amount, confirmation required")

// Service is the customer API client.
type Service struct {
	gw       *gateway.Client
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a customer service using the given gateway.
func NewService(gw *gateway.Client) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
		log:      logger.WithComponent("customers"),
	}
}

// CustomerInput is the create/update payload.
type CustomerInput struct {
	Name      string  `json:"name" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Address   string  `json:"address"`
	DueAmount float64 `json:"dueAmount" validate:"gte=0"`
}

// List fetches one page of customers.
func (s *Service) List(ctx context.Context, page, size int) (*models.Page[models.Customer], error) {
	var out models.Page[models.Customer]
	endpoint := fmt.Sprintf("/api/customers?page=%d&size=%d", page, size)
	if err := s.gw.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search queries customers by name or phone fragment.
func (s *Service) Search(ctx context.Context, query string) ([]models.Customer, error) {
	var out models.Page[models.Customer]
	endpoint := "/api/customers/search?q=" + url.QueryEscape(query)
	if err := s.gw.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// Get fetches a single customer profile.
func (s *Service) Get(ctx context.Context, id int64) (*models.Customer, error) {
	var out models.Customer
	if err := s.gw.Get(ctx, "/api/customers/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a new customer.
func (s *Service) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := s.gw.Post(ctx, "/api/customers", in, &out); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", out.ID).Str("name", out.Name).Msg("Customer created")
	return &out, nil
}

// Update replaces a customer's details.
func (s *Service) Update(ctx context.Context, id int64, in CustomerInput) (*models.Customer, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := s.gw.Put(ctx, "/api/customers/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, "/api/customers/"+strconv.FormatInt(id, 10))
}

// HistoryQuery filters the paged payment history.
type HistoryQuery struct {
	Page   int
	Size   int
	Sort   string
	Status string // Paid, Partial, Unpaid or empty for all
	Search string // customer name or invoice number fragment
}

// PaymentHistory fetches one page of payment records.
func (s *Service) PaymentHistory(ctx context.Context, q HistoryQuery) (*models.Page[models.PaymentRecord], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	var out models.Page[models.PaymentRecord]
	if err := s.gw.Get(ctx, "/api/customers/payment-history?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentInput records a due payment against a customer.
type PaymentInput struct {
	CustomerID int64   `json:"customerId" validate:"required"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	Method     string  `json:"paymentMethod" validate:"required"`
	Date       string  `json:"date" validate:"required"`

	// Confirmed must be set when Amount exceeds the current due.
	Confirmed bool `json:"-"`
}

// PayDue submits a due payment. The returned customer is re-fetched from the
// server after the payment so the displayed balance is authoritative; if the
// re-fetch fails the locally computed balance is returned instead and the
// second return value is false.
func (s *Service) PayDue(ctx context.Context, in PaymentInput) (*models.Customer, bool, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, false, err
	}

	current, err := s.Get(ctx, in.CustomerID)
	if err != nil {
		return nil, false, err
	}

	applied := ledger.ApplyCustomerPayment(current.DueAmount, in.Amount)
	if applied.Overpaid && !in.Confirmed {
		return nil, false, ErrOverpayment
	}

	if err := s.gw.Post(ctx, "/api/sales/payment", in, nil); err != nil {
		return nil, false, err
	}

	s.log.Info().
		Int64("customer_id", in.CustomerID).
		Float64("amount", in.Amount).
		Float64("new_due", applied.NewDue).
		Msg("Due payment recorded")

	// The optimistic balance is provisional; prefer the server's recomputation.
	refreshed, err := s.Get(ctx, in.CustomerID)
	if err != nil {
		s.log.Warn().Err(err).Msg("Re-fetch after payment failed, using local balance")
		provisional := *current
		provisional.DueAmount = applied.NewDue
		return &provisional, false, nil
	}
	return refreshed, true, nil
}
