// Package suppliers wraps the backend's supplier and shipment endpoints.
//
// Recording a shipment is the one place the supplier's running due balance
// is adjusted client-side: the payment retires existing due first, the
// remainder offsets only the purchase amount, and labor/transport costs stay
// on the shipment record. See internal/ledger for the allocation rules.
package suppliers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"steeldesk/internal/gateway"
	"steeldesk/internal/ledger"
	"steeldesk/internal/logger"
	"steeldesk/pkg/models"
)

// Service is the supplier API client.
type Service struct {
	gw       *gateway.Client
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a supplier service using the given gateway.
func NewService(gw *gateway.Client) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
		log:      logger.WithComponent("suppliers"),
	}
}

// SupplierInput is the create/update payload.
type SupplierInput struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contactPerson"`
	ContactNumber string  `json:"contactNumber"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Address       string  `json:"address"`
	DueAmount     float64 `json:"dueAmount" validate:"gte=0"`
}

// List fetches one page of suppliers.
func (s *Service) List(ctx context.Context, page, size int) (*models.Page[models.Supplier], error) {
	var out models.Page[models.Supplier]
	endpoint := fmt.Sprintf("/api/suppliers?page=%d&size=%d", page, size)
	if err := s.gw.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single supplier.
func (s *Service) Get(ctx context.Context, id int64) (*models.Supplier, error) {
	var out models.Supplier
	if err := s.gw.Get(ctx, "/api/suppliers/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a new supplier.
func (s *Service) Create(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.Supplier
	if err := s.gw.Post(ctx, "/api/suppliers", in, &out); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", out.ID).Str("name", out.Name).Msg("Supplier created")
	return &out, nil
}

// Update replaces a supplier's details.
func (s *Service) Update(ctx context.Context, id int64, in SupplierInput) (*models.Supplier, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.Supplier
	if err := s.gw.Put(ctx, "/api/suppliers/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a supplier.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, "/api/suppliers/"+strconv.FormatInt(id, 10))
}

// ShipmentInput records a supplier delivery with its cost breakdown.
type ShipmentInput struct {
	SupplierID     int64   `json:"-" validate:"required"`
	SupplierName   string  `json:"supplierName" validate:"required"`
	Date           string  `json:"date" validate:"required"`
	PurchaseAmount float64 `json:"purchaseAmount" validate:"gte=0"`
	LaborCost      float64 `json:"laborCost" validate:"gte=0"`
	TransportCost  float64 `json:"transportCost" validate:"gte=0"`
	PaidAmount     float64 `json:"paidAmount" validate:"gte=0"`
}

// ShipmentResult is what the view renders after recording a shipment.
type ShipmentResult struct {
	Shipment   models.Shipment
	Allocation ledger.ShipmentAllocation

	// Supplier is the supplier after the shipment, re-fetched from the
	// server when possible. Provisional is true when the re-fetch failed
	// and Supplier carries the locally computed due instead.
	Supplier    models.Supplier
	Provisional bool
}

// RecordShipment posts a shipment and returns the allocation outcome plus
// the supplier's updated balance.
func (s *Service) RecordShipment(ctx context.Context, in ShipmentInput) (*ShipmentResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	supplier, err := s.Get(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}

	alloc := ledger.AllocateShipment(
		supplier.DueAmount,
		in.PurchaseAmount,
		in.LaborCost,
		in.TransportCost,
		in.PaidAmount,
	)

	payload := models.Shipment{
		SupplierName:   in.SupplierName,
		Date:           in.Date,
		PurchaseAmount: in.PurchaseAmount,
		LaborCost:      in.LaborCost,
		TransportCost:  in.TransportCost,
		PaidAmount:     in.PaidAmount,
		TotalAmount:    alloc.ShipmentTotal,
		DueAmount:      alloc.ShipmentDue,
	}

	var created models.Shipment
	if err := s.gw.Post(ctx, "/api/suppliers/shipments", payload, &created); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("supplier_id", in.SupplierID).
		Float64("total", alloc.ShipmentTotal).
		Float64("new_supplier_due", alloc.NewSupplierDue).
		Msg("Shipment recorded")

	result := &ShipmentResult{Shipment: created, Allocation: alloc}

	refreshed, err := s.Get(ctx, in.SupplierID)
	if err != nil {
		s.log.Warn().Err(err).Msg("Re-fetch after shipment failed, using local balance")
		provisional := *supplier
		provisional.DueAmount = alloc.NewSupplierDue
		result.Supplier = provisional
		result.Provisional = true
		return result, nil
	}
	result.Supplier = *refreshed
	return result, nil
}
