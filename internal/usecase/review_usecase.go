package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to review a purchased product.
type CreateReviewInput struct {
	ProductID uuid.UUID
	OrderID   uuid.UUID
	Rating    int
	Comment   string
	Images    []entity.ImageInput
}

// UpdateReviewInput carries the review fields to change.
type UpdateReviewInput struct {
	Rating        *int
	Comment       *string
	Images        []entity.ImageInput
	ReplaceImages bool
}

// ReviewUsecase defines review operations. Every mutation recomputes the product's rating.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, userID uuid.UUID, input *CreateReviewInput) (*entity.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ListReviews(ctx context.Context, filter entity.ReviewFilter) (*Page[*entity.Review], error)
	UpdateReview(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error
}
