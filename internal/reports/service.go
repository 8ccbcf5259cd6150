// Package reports fetches the backend's profit-and-loss aggregation and
// builds the dashboard summary from the list endpoints.
package reports

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
	"steeldesk/internal/customers"
	"steeldesk/internal/gateway"
	"steeldesk/internal/logger"
	"steeldesk/internal/products"
	"steeldesk/internal/suppliers"
	"steeldesk/pkg/models"
)

// Service is the reporting API client.
type Service struct {
	gw        *gateway.Client
	customers *customers.Service
	products  *products.Service
	suppliers *suppliers.Service
	log       zerolog.Logger
}

// NewService creates a report service using the given gateway and the
// feature services it aggregates over.
func NewService(gw *gateway.Client, c *customers.Service, p *products.Service, s *suppliers.Service) *Service {
	return &Service{
		gw:        gw,
		customers: c,
		products:  p,
		suppliers: s,
		log:       logger.WithComponent("reports"),
	}
}

// PnL fetches the profit-and-loss report for an inclusive date range
// (yyyy-mm-dd).
func (s *Service) PnL(ctx context.Context, startDate, endDate string) (*models.PnLReport, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)

	var out models.PnLReport
	if err := s.gw.Get(ctx, "/api/pnl?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard is the landing summary: counts and outstanding balances drawn
// from the first page of each collection's envelope.
type Dashboard struct {
	CustomerCount  int64
	SupplierCount  int64
	ProductCount   int64
	ReceivableDue  float64 // owed to the shop by customers on the sampled page
	PayableDue     float64 // owed by the shop to suppliers on the sampled page
	LowStock       []models.Product
	LowStockCutoff float64
}

// lowStockCutoff flags products at or below this quantity.
const lowStockCutoff = 1.0

// Dashboard assembles the summary. Each fetch is sequential; a failure in
// any of them fails the whole summary, matching the all-or-nothing load of
// the original dashboard screen.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	const sampleSize = 100

	custs, err := s.customers.List(ctx, 0, sampleSize)
	if err != nil {
		return nil, err
	}
	supps, err := s.suppliers.List(ctx, 0, sampleSize)
	if err != nil {
		return nil, err
	}
	prods, err := s.products.List(ctx, 0, sampleSize)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		CustomerCount:  custs.TotalElements,
		SupplierCount:  supps.TotalElements,
		ProductCount:   prods.TotalElements,
		LowStockCutoff: lowStockCutoff,
	}
	for _, c := range custs.Content {
		d.ReceivableDue += c.DueAmount
	}
	for _, sp := range supps.Content {
		d.PayableDue += sp.DueAmount
	}
	for _, p := range prods.Content {
		if p.Stock <= lowStockCutoff {
			d.LowStock = append(d.LowStock, p)
		}
	}

	s.log.Debug().
		Int64("customers", d.CustomerCount).
		Int64("products", d.ProductCount).
		Msg("Dashboard assembled")

	return d, nil
}
