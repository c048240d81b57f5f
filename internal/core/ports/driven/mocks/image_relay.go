package mocks

import (
	"context"
	"sync"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure MockImageRelay implements ImageRelay
var _ driven.ImageRelay = (*MockImageRelay)(nil)

// MockImageRelay is a mock implementation of ImageRelay for testing.
// It records uploads and returns a deterministic URL.
type MockImageRelay struct {
	mu       sync.Mutex
	Uploaded []*domain.UploadedFile

	// URL is returned for every upload (default "https://assets.test/image")
	URL string

	// Err forces Upload to fail
	Err error
}

// NewMockImageRelay creates a new MockImageRelay
func NewMockImageRelay() *MockImageRelay {
	return &MockImageRelay{URL: "https://assets.test/image"}
}

func (m *MockImageRelay) Upload(ctx context.Context, file *domain.UploadedFile) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploaded = append(m.Uploaded, file)
	return m.URL, nil
}
