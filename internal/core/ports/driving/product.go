package driving

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// CreateProductRequest represents a request to create a new product.
// Image is required: a product is never created without a relayed image.
type CreateProductRequest struct {
	Title       string
	Description string
	Price       float64
	Image       *domain.UploadedFile
}

// UpdateProductRequest represents a partial product update.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Title       *string
	Description *string
	Price       *float64
	Image       *domain.UploadedFile
}

// ProductService manages the product catalogue
type ProductService interface {
	// Create relays the image and persists a new product
	Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error)

	// List retrieves all products
	List(ctx context.Context) ([]*domain.Product, error)

	// Update applies a partial update, relaying a replacement image first
	// when one is supplied
	Update(ctx context.Context, id string, req UpdateProductRequest) (*domain.Product, error)

	// Delete removes a product by ID
	Delete(ctx context.Context, id string) error
}
