package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure MockProductStore implements ProductStore
var _ driven.ProductStore = (*MockProductStore)(nil)

// MockProductStore is a mock implementation of ProductStore for testing
type MockProductStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	// SaveErr forces Save to fail
	SaveErr error
}

// NewMockProductStore creates a new MockProductStore
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		products: make(map[string]*domain.Product),
	}
}

func (m *MockProductStore) Save(ctx context.Context, product *domain.Product) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (m *MockProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.products, id)
	return nil
}
