package driven

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// ProductStore handles product persistence (PostgreSQL)
type ProductStore interface {
	// Save creates or updates a product
	Save(ctx context.Context, product *domain.Product) error

	// Get retrieves a product by ID
	Get(ctx context.Context, id string) (*domain.Product, error)

	// List retrieves all products
	List(ctx context.Context) ([]*domain.Product, error)

	// Delete deletes a product
	Delete(ctx context.Context, id string) error
}
