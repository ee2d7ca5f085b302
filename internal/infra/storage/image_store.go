// Package storage hosts product, category, team, review and avatar images in a gocloud blob bucket.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/gommon/bytes"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets for local development
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"
)

const (
	defaultBucketURL    = "mem://"
	defaultMaxImageSize = 5 << 20
	cacheControl        = "public, max-age=31536000, immutable"
)

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type blobImageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	maxSize       int64
	logger        *slog.Logger
}

// Params holds dependencies for the image store, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStore opens the configured bucket and closes it on shutdown.
func NewImageStore(params Params) (service.ImageStore, error) {
	cfg := params.Config.Storage
	if cfg == nil {
		cfg = &config.StorageConfig{}
	}

	bucketURL := cfg.BucketURL
	if bucketURL == "" {
		params.Logger.Warn("Storage bucket not configured, images are kept in memory")
		bucketURL = defaultBucketURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image bucket %s", bucketURL)
	}
	if cfg.Prefix != "" {
		bucket = blob.PrefixedBucket(bucket, strings.TrimSuffix(cfg.Prefix, "/")+"/")
	}

	maxSize := int64(defaultMaxImageSize)
	if cfg.MaxImageSize != "" {
		parsed, err := bytes.Parse(cfg.MaxImageSize)
		if err != nil {
			bucket.Close()

			return nil, errors.Wrapf(err, "invalid storage.maxImageSize %q", cfg.MaxImageSize)
		}
		maxSize = parsed
	}

	store := NewBlobImageStore(bucket, cfg.PublicBaseURL, maxSize, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return store, nil
}

// NewBlobImageStore wraps an open bucket. The caller owns closing the bucket.
func NewBlobImageStore(bucket *blob.Bucket, publicBaseURL string, maxSize int64, logger *slog.Logger) service.ImageStore {
	return &blobImageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
		logger:        logger,
	}
}

// Upload validates the content, stores it under folder with a fresh key and returns the hosted image.
func (s *blobImageStore) Upload(ctx context.Context, folder string, upload entity.ImageUpload) (entity.Image, error) {
	size := int64(len(upload.Data))
	if size == 0 {
		return entity.Image{}, errors.Wrap(service.ErrUnsupportedImageType, "empty image")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return entity.Image{}, errors.Wrapf(service.ErrImageTooLarge, "%s is larger than %s",
			bytes.Format(size), bytes.Format(s.maxSize))
	}

	// Sniff the bytes instead of trusting the client-declared content type.
	contentType := http.DetectContentType(upload.Data)
	ext, ok := extensionsByType[contentType]
	if !ok {
		return entity.Image{}, errors.Wrapf(service.ErrUnsupportedImageType, "%s (%s)", upload.Filename, contentType)
	}

	key := path.Join(strings.Trim(folder, "/"), uuid.Must(uuid.NewV7()).String()+ext)
	if err := s.bucket.WriteAll(ctx, key, upload.Data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
		Metadata: map[string]string{
			"original-filename": path.Base(upload.Filename),
			"sha256":            checksum(upload.Data),
		},
	}); err != nil {
		return entity.Image{}, errors.Wrapf(err, "failed to write image %s", key)
	}

	s.logger.DebugContext(ctx, "Image uploaded",
		slog.String("public_id", key),
		slog.String("size", bytes.Format(size)),
	)

	return entity.Image{PublicID: key, URL: s.publicURL(key)}, nil
}

// Delete removes a hosted image. Missing objects are ignored.
func (s *blobImageStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	if err := s.bucket.Delete(ctx, publicID); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete image %s", publicID)
	}

	return nil
}

func (s *blobImageStore) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return "/" + key
	}

	return s.publicBaseURL + "/" + key
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}
