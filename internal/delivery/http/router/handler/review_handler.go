package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler serves product reviews.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// CreateReviewRequest is the review body, sent as JSON or multipart form.
type CreateReviewRequest struct {
	ProductID string         `json:"productId" form:"productId" validate:"required,uuid"`
	OrderID   string         `json:"orderId" form:"orderId" validate:"required,uuid"`
	Rating    int            `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comment   string         `json:"comment" form:"comment" validate:"max=2000"`
	Images    []entity.Image `json:"images" form:"-"`
}

// UpdateReviewRequest changes a review. Absent fields are left untouched.
type UpdateReviewRequest struct {
	Rating  *int           `json:"rating" form:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string        `json:"comment" form:"comment" validate:"omitempty,max=2000"`
	Images  []entity.Image `json:"images" form:"-"`
}

// CreateReview handles a review of a delivered purchase.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	productID, err := optionalID(req.ProductID, "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	orderID, err := optionalID(req.OrderID, "orderId")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	images, _, err := imageInputs(c, req.Images)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), userID, &usecase.CreateReviewInput{
		ProductID: *productID,
		OrderID:   *orderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    images,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, review, "Review submitted successfully")
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.GetReview(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review, "")
}

// ListProductReviews lists the reviews of one product.
func (h *ReviewHandler) ListProductReviews(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.list(c, entity.ReviewFilter{ProductID: &productID, Page: pageRequest(c)})
}

// ListMyReviews lists the caller's reviews.
func (h *ReviewHandler) ListMyReviews(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return h.list(c, entity.ReviewFilter{UserID: &userID, Page: pageRequest(c)})
}

// ListReviews lists every review for admins, optionally for one product.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	productID, err := optionalID(c.QueryParam("productId"), "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.list(c, entity.ReviewFilter{ProductID: productID, Page: pageRequest(c)})
}

func (h *ReviewHandler) list(c echo.Context, filter entity.ReviewFilter) error {
	page, err := h.reviewUC.ListReviews(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

// UpdateReview lets the author or an admin edit a review.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	images, replace, err := imageInputs(c, req.Images)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), actor, id, &usecase.UpdateReviewInput{
		Rating:        req.Rating,
		Comment:       req.Comment,
		Images:        images,
		ReplaceImages: replace,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review, "Review updated successfully")
}

// DeleteReview lets the author or an admin remove a review.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted successfully")
}
