// Package sales submits invoice drafts and renders the printable invoice.
//
// Creating a sale is a single non-idempotent POST: on failure the draft is
// left untouched for the operator to retry; on success the server's response
// (sale code, computed totals) takes precedence over the client's own
// arithmetic in everything rendered afterwards.
package sales

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"steeldesk/internal/gateway"
	"steeldesk/internal/invoice"
	"steeldesk/internal/logger"
	"steeldesk/pkg/models"
)

// Service is the sales API client.
type Service struct {
	gw  *gateway.Client
	log zerolog.Logger
}

// NewService creates a sales service using the given gateway.
func NewService(gw *gateway.Client) *Service {
	return &Service{
		gw:  gw,
		log: logger.WithComponent("sales"),
	}
}

// Create validates and submits a draft. The returned Sale is reconciled:
// fields the server filled win over the client's computed values.
func (s *Service) Create(ctx context.Context, draft *invoice.Draft) (*models.Sale, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	totals := draft.Totals()
	payload := salePayload{
		CustomerID:    draft.CustomerID,
		CustomerName:  draft.CustomerName,
		Date:          draft.Date,
		Lines:         draft.Lines,
		Subtotal:      totals.Subtotal,
		Discount:      draft.Discount,
		OtherCost:     draft.OtherCost,
		GrandTotal:    totals.GrandTotal,
		AmountPaid:    draft.AmountPaid,
		DueAmount:     totals.Due,
		PaymentMethod: draft.PaymentMethod,
	}

	var raw json.RawMessage
	if err := s.gw.Post(ctx, "/api/sales", payload, &raw); err != nil {
		return nil, err
	}

	var created models.Sale
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, &gateway.ParseError{Endpoint: "/api/sales", Err: err}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &gateway.ParseError{Endpoint: "/api/sales", Err: err}
	}

	reconciled := reconcile(&created, fields, draft, totals)

	s.log.Info().
		Str("sale_code", reconciled.SaleCode).
		Float64("grand_total", reconciled.GrandTotal).
		Float64("due", reconciled.DueAmount).
		Msg("Sale created")

	return reconciled, nil
}

// salePayload is the request body for POST /api/sales. The client sends its
// computed totals alongside the lines; the server recomputes and responds
// with the authoritative figures.
type salePayload struct {
	CustomerID    int64          `json:"customerId"`
	CustomerName  string         `json:"customerName"`
	Date          string         `json:"date"`
	Lines         []invoice.Line `json:"lines"`
	Subtotal      float64        `json:"subtotal"`
	Discount      float64        `json:"discount"`
	OtherCost     float64        `json:"otherCost"`
	GrandTotal    float64        `json:"grandTotal"`
	AmountPaid    float64        `json:"amountPaid"`
	DueAmount     float64        `json:"dueAmount"`
	PaymentMethod string         `json:"paymentMethod"`
}

// reconcile fills any field the server's response omitted from the client
// draft, so the printed invoice is complete even against a terse backend
// response. A key present in the response body is authoritative even when
// its value is zero: a server that recomputes discount to 0 keeps that 0.
// Empty strings and empty line arrays count as omitted.
func reconcile(sale *models.Sale, fields map[string]json.RawMessage, draft *invoice.Draft, totals invoice.Totals) *models.Sale {
	has := func(key string) bool {
		v, ok := fields[key]
		return ok && string(v) != "null"
	}

	if !has("customerId") {
		sale.CustomerID = draft.CustomerID
	}
	if sale.CustomerName == "" {
		sale.CustomerName = draft.CustomerName
	}
	if sale.Date == "" {
		sale.Date = draft.Date
	}
	if len(sale.Lines) == 0 {
		sale.Lines = make([]models.SaleLine, len(draft.Lines))
		for i, l := range draft.Lines {
			sale.Lines[i] = models.SaleLine{
				ProductID: l.ProductID,
				Name:      l.Name,
				Unit:      l.Unit,
				Quantity:  l.Quantity,
				Rate:      l.Rate,
				Total:     l.Total,
			}
		}
	}
	if !has("subtotal") {
		sale.Subtotal = totals.Subtotal
	}
	if !has("discount") {
		sale.Discount = draft.Discount
	}
	if !has("otherCost") {
		sale.OtherCost = draft.OtherCost
	}
	if !has("grandTotal") {
		sale.GrandTotal = totals.GrandTotal
	}
	if !has("amountPaid") {
		sale.AmountPaid = draft.AmountPaid
	}
	if !has("dueAmount") {
		sale.DueAmount = totals.Due
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = draft.PaymentMethod
	}
	return sale
}

// List fetches one page of past sales.
func (s *Service) List(ctx context.Context, page, size int) (*models.Page[models.Sale], error) {
	var out models.Page[models.Sale]
	endpoint := fmt.Sprintf("/api/sales?page=%d&size=%d", page, size)
	if err := s.gw.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
