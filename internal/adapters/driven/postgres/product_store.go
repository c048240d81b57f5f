package postgres

import (
	"context"
	"database/sql"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProductStore = (*ProductStore)(nil)

// ProductStore implements driven.ProductStore using PostgreSQL
type ProductStore struct {
	db *DB
}

// NewProductStore creates a new ProductStore
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

// Save creates or updates a product
func (s *ProductStore) Save(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)
	return err
}

// Get retrieves a product by ID
func (s *ProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, title, description, price, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List retrieves all products
func (s *ProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, title, description, price, image_url, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Price,
			&product.ImageURL,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Delete deletes a product
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
