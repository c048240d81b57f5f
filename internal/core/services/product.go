package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Ensure productService implements ProductService
var _ driving.ProductService = (*productService)(nil)

// productService implements the ProductService interface
type productService struct {
	productStore driven.ProductStore
	imageRelay   driven.ImageRelay
}

// NewProductService creates a new ProductService
func NewProductService(productStore driven.ProductStore, imageRelay driven.ImageRelay) driving.ProductService {
	return &productService{
		productStore: productStore,
		imageRelay:   imageRelay,
	}
}

// Create relays the image and persists a new product. Fields are
// validated before the relay, and the relay runs before the store:
// a record is never written without a durable image URL.
func (s *productService) Create(ctx context.Context, req driving.CreateProductRequest) (*domain.Product, error) {
	if req.Title == "" || req.Description == "" || req.Image == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &domain.Product{
		ID:          generateID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Field constraints are checked before the upload: an invalid
	// product must not leave an orphaned object on the asset host.
	if err := product.ValidateFields(); err != nil {
		return nil, err
	}

	imageURL, err := s.imageRelay.Upload(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRelayFailed, err)
	}
	product.ImageURL = imageURL

	if err := s.productStore.Save(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// List retrieves all products
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productStore.List(ctx)
}

// Update applies a partial update. A replacement image is only relayed
// once the updated fields pass validation; without one the existing URL
// stays as is.
func (s *productService) Update(ctx context.Context, id string, req driving.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	product.UpdatedAt = time.Now()

	// As in Create, the updated fields are checked before a
	// replacement image is relayed.
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if req.Image != nil {
		imageURL, err := s.imageRelay.Upload(ctx, req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRelayFailed, err)
		}
		product.ImageURL = imageURL
	}

	if err := s.productStore.Save(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product by ID
func (s *productService) Delete(ctx context.Context, id string) error {
	return s.productStore.Delete(ctx, id)
}
