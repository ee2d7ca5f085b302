package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when the (user, product, order) tuple already has a review.
	ErrDuplicateReview = errors.New("review already exists")
)

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// Exists reports whether the (user, product, order) tuple already has a review.
	Exists(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error)

	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProduct removes every review of a product and returns them.
	DeleteByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// List returns one page of reviews matching the filter, newest first.
	List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.Review, int64, error)

	// RatingStats computes the live average rating and review count of a product.
	RatingStats(ctx context.Context, productID uuid.UUID) (entity.RatingStats, error)
}
