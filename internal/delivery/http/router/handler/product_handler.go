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

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the product catalog.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// ListProductsQuery holds the catalog filters.
type ListProductsQuery struct {
	Keyword    string   `query:"keyword" validate:"max=100"`
	CategoryID string   `query:"category" validate:"omitempty,uuid"`
	TeamID     string   `query:"team" validate:"omitempty,uuid"`
	MinPrice   amount   `query:"minPrice"`
	MaxPrice   amount   `query:"maxPrice"`
	MinRating  *float64 `query:"minRating" validate:"omitempty,min=0,max=5"`
	InStock    bool     `query:"inStock"`
	Sort       string   `query:"sort" validate:"omitempty,oneof=newest price_asc price_desc rating"`
}

// ProductRequest is the create and update body. Update leaves absent fields untouched;
// an empty categoryId or teamId detaches the product.
type ProductRequest struct {
	Name        *string        `json:"name" form:"name" validate:"omitempty,min=1,max=200"`
	Description *string        `json:"description" form:"description" validate:"omitempty,max=5000"`
	Price       amount         `json:"price" form:"price"`
	Stock       *int           `json:"stock" form:"stock" validate:"omitempty,min=0"`
	CategoryID  *string        `json:"categoryId" form:"categoryId"`
	TeamID      *string        `json:"teamId" form:"teamId"`
	Images      []entity.Image `json:"images" form:"-"`
}

// ListProducts handles the public catalog listing.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var query ListProductsQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	filter := entity.ProductFilter{
		Keyword:   query.Keyword,
		MinPrice:  query.MinPrice.ptr(),
		MaxPrice:  query.MaxPrice.ptr(),
		MinRating: query.MinRating,
		InStock:   query.InStock,
		Sort:      entity.ProductSort(query.Sort),
		Page:      pageRequest(c),
	}
	var err error
	if filter.CategoryID, err = optionalID(query.CategoryID, "category"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.TeamID, err = optionalID(query.TeamID, "team"); err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.productUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

// GetProduct handles fetching one product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// CreateProduct handles product creation with optional image uploads.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	if req.Name == nil || *req.Name == "" || !req.Price.set || req.Stock == nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "name, price and stock are required")
	}

	images, _, err := imageInputs(c, req.Images)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.CreateProductInput{
		Name:   *req.Name,
		Price:  req.Price.Decimal,
		Stock:  *req.Stock,
		Images: images,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.CategoryID != nil {
		if input.CategoryID, err = optionalID(*req.CategoryID, "categoryId"); err != nil {
			return response.HandleAppError(c, err)
		}
	}
	if req.TeamID != nil {
		if input.TeamID, err = optionalID(*req.TeamID, "teamId"); err != nil {
			return response.HandleAppError(c, err)
		}
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct handles partial product updates.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	images, replace, err := imageInputs(c, req.Images)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price.ptr(),
		Stock:         req.Stock,
		Images:        images,
		ReplaceImages: replace,
	}
	if req.CategoryID != nil {
		if input.CategoryID, err = optionalID(*req.CategoryID, "categoryId"); err != nil {
			return response.HandleAppError(c, err)
		}
		input.ClearCategory = input.CategoryID == nil
	}
	if req.TeamID != nil {
		if input.TeamID, err = optionalID(*req.TeamID, "teamId"); err != nil {
			return response.HandleAppError(c, err)
		}
		input.ClearTeam = input.TeamID == nil
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes a product with its reviews and images.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}
