package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// Ensure Relay implements ImageRelay
var _ driven.ImageRelay = (*Relay)(nil)

// Relay stores uploaded images in a MinIO bucket and returns
// the durable public URL of each stored object.
type Relay struct {
	api       minioAPI
	bucket    string
	publicURL string
}

// NewRelay creates a new image relay using a real *minio.Client instance.
func NewRelay(ctx context.Context, client *minio.Client, bucket, publicURL string) (*Relay, error) {
	return NewRelayWithAPI(ctx, minioClientWrapper{c: client}, bucket, publicURL)
}

// NewRelayWithAPI allows injecting a mockable API (used in tests).
func NewRelayWithAPI(ctx context.Context, api minioAPI, bucket, publicURL string) (*Relay, error) {
	r := &Relay{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}

	// Ensure bucket exists
	if err := r.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return r, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (r *Relay) ensureBucketExists(ctx context.Context) error {
	exists, err := r.api.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = r.api.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload stores the file under a fresh object key and returns its URL.
// The original file name only contributes its extension.
func (r *Relay) Upload(ctx context.Context, file *domain.UploadedFile) (string, error) {
	key := "products/" + uuid.NewString() + path.Ext(file.Name)

	_, err := r.api.PutObject(ctx, r.bucket, key, bytes.NewReader(file.Data), int64(len(file.Data)), minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", r.publicURL, r.bucket, key), nil
}
