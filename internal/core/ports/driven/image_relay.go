package driven

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// ImageRelay forwards an uploaded file to the asset host and
// returns a durable URL for it.
type ImageRelay interface {
	Upload(ctx context.Context, file *domain.UploadedFile) (string, error)
}
