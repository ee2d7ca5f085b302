package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	filter     service.ContentFilter
	images     *imageManager
	metrics    service.BusinessMetrics
	pager      pager
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	ReviewRepo    repository.ReviewRepository
	ContentFilter service.ContentFilter
	ImageStore    service.ImageStore
	Metrics       service.BusinessMetrics
	Config        *config.Config
	Logger        *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		filter:     params.ContentFilter,
		images:     &imageManager{store: params.ImageStore, metrics: params.Metrics, logger: params.Logger},
		metrics:    params.Metrics,
		pager:      newPager(params.Config),
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview stores a review of a product bought in one of the caller's
// delivered orders and refreshes the product rating.
func (srv *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	images, uploaded, err := srv.images.resolve(ctx, folderReviews, input.Images, nil)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		UserID:    userID,
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   srv.filter.Censor(strings.TrimSpace(input.Comment)),
		Images:    images,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()
		productRepo := repoFactory.NewProductRepository()

		order, err := repoFactory.NewOrderRepository().FindByID(ctx, input.OrderID)
		if err != nil {
			return translate(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound)
		}
		if !order.IsOwnedBy(userID) {
			return domainerrors.ErrForbidden.WrapMessage("order belongs to another user")
		}
		if order.Status != entity.OrderStatusDelivered || !order.ContainsProduct(input.ProductID) {
			return domainerrors.ErrReviewNotAllowed.WrapMessage("order is not eligible for this review")
		}

		if _, err := productRepo.FindByIDForUpdate(ctx, input.ProductID); err != nil {
			return translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
		}

		exists, err := reviewRepo.Exists(ctx, userID, input.ProductID, input.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to check existing review")
		}
		if exists {
			return domainerrors.ErrReviewAlreadyExists.WrapMessage("duplicate review")
		}

		if err := reviewRepo.Create(ctx, review); err != nil {
			return translate(err, repository.ErrDuplicateReview, domainerrors.ErrReviewAlreadyExists)
		}

		return recomputeRating(ctx, reviewRepo, productRepo, input.ProductID)
	})
	if err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.metrics.ReviewSubmitted(review.Rating)
	srv.log(ctx).Info("Review created",
		slog.String("review_id", review.ID.String()),
		slog.String("product_id", review.ProductID.String()),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

func (srv *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := srv.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound)
	}

	return review, nil
}

func (srv *reviewService) ListReviews(ctx context.Context, filter entity.ReviewFilter) (*usecase.Page[*entity.Review], error) {
	filter.Page = srv.pager.normalize(filter.Page)

	reviews, total, err := srv.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return usecase.NewPage(reviews, filter.Page, total), nil
}

// UpdateReview edits a review as its author or an admin and refreshes the product rating.
func (srv *reviewService) UpdateReview(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
	}

	current, err := srv.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(current) {
		return nil, domainerrors.ErrForbidden.WrapMessage("review belongs to another user")
	}
	previousImages := current.Images

	var uploaded []entity.Image
	if input.ReplaceImages {
		current.Images, uploaded, err = srv.images.resolve(ctx, folderReviews, input.Images, previousImages)
		if err != nil {
			return nil, err
		}
	}
	if input.Rating != nil {
		current.Rating = *input.Rating
	}
	if input.Comment != nil {
		current.Comment = srv.filter.Censor(strings.TrimSpace(*input.Comment))
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		if err := reviewRepo.Update(ctx, current); err != nil {
			return translate(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound)
		}

		return recomputeRating(ctx, reviewRepo, repoFactory.NewProductRepository(), current.ProductID)
	})
	if err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, errors.Wrap(err, "failed to update review")
	}

	if input.ReplaceImages {
		srv.images.discardReplaced(ctx, previousImages, current.Images)
	}

	return current, nil
}

// DeleteReview removes a review as its author or an admin and refreshes the product rating.
func (srv *reviewService) DeleteReview(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound)
		}
		if !actor.CanAccess(found) {
			return domainerrors.ErrForbidden.WrapMessage("review belongs to another user")
		}
		review = found

		if err := reviewRepo.Delete(ctx, id); err != nil {
			return translate(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound)
		}

		return recomputeRating(ctx, reviewRepo, repoFactory.NewProductRepository(), found.ProductID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	srv.images.discard(ctx, review.Images)

	return nil
}

// recomputeRating rebuilds the product aggregate from every remaining review.
// The product row stays locked until commit, so concurrent review writes on
// the same product recompute one after another. A product deleted in the
// meantime has nothing left to update.
func recomputeRating(ctx context.Context, reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, productID uuid.UUID) error {
	if _, err := productRepo.FindByIDForUpdate(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to lock product")
	}

	stats, err := reviewRepo.RatingStats(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "failed to compute rating")
	}

	err = productRepo.UpdateRating(ctx, productID, stats.Rounded(), int(stats.Count))
	if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
		return errors.Wrap(err, "failed to store rating")
	}

	return nil
}

func validateRating(rating int) error {
	if rating < entity.MinReviewRating || rating > entity.MaxReviewRating {
		return domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5").WrapMessage("invalid rating")
	}

	return nil
}
