// Package products wraps the backend's inventory endpoints.
package products

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"steeldesk/internal/gateway"
	"steeldesk/internal/logger"
	"steeldesk/pkg/models"
)

// Service is the inventory API client.
type Service struct {
	gw       *gateway.Client
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a product service using the given gateway.
func NewService(gw *gateway.Client) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
		log:      logger.WithComponent("products"),
	}
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name         string  `json:"name" validate:"required"`
	ProductCode  string  `json:"productCode" validate:"required"`
	Stock        float64 `json:"stock" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Type         string  `json:"type"`
	BuyingPrice  float64 `json:"buyingPrice" validate:"gte=0"`
	SellingPrice float64 `json:"sellingPrice" validate:"gte=0"`
	Warehouse    string  `json:"warehouse" validate:"required"`
	SupplierName string  `json:"supplierName"`
	Date         string  `json:"date"`
}

// List fetches one page of products.
func (s *Service) List(ctx context.Context, page, size int) (*models.Page[models.Product], error) {
	var out models.Page[models.Product]
	endpoint := fmt.Sprintf("/api/products?page=%d&size=%d", page, size)
	if err := s.gw.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search queries products by name or code, paged.
func (s *Service) Search(ctx context.Context, query string, page, size int) (*models.Page[models.Product], error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var out models.Page[models.Product]
	if err := s.gw.Get(ctx, "/api/products/search?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single product. Invoice drafting re-fetches the product
// before quantity edits so the stock shown is the server's latest.
func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := s.gw.Get(ctx, "/api/products/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a new product.
func (s *Service) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.Product
	if err := s.gw.Post(ctx, "/api/products", in, &out); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", out.ID).Str("code", out.ProductCode).Msg("Product created")
	return &out, nil
}

// Update replaces a product's details.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.Product
	if err := s.gw.Put(ctx, "/api/products/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, "/api/products/"+strconv.FormatInt(id, 10))
}
