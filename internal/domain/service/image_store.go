package service

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

var (
	// ErrImageTooLarge is returned when an upload exceeds the configured size.
	ErrImageTooLarge = errors.New("image exceeds maximum size")
	// ErrUnsupportedImageType is returned when the content is not a supported image format.
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// ImageStore hosts uploaded images and serves them from public URLs.
type ImageStore interface {
	// Upload stores the content under folder and returns the hosted image.
	Upload(ctx context.Context, folder string, upload entity.ImageUpload) (entity.Image, error)

	// Delete removes a hosted image. Deleting a missing image is not an error.
	Delete(ctx context.Context, publicID string) error
}
