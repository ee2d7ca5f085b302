package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReferenceRequest is the body of category and team mutations.
type ReferenceRequest struct {
	Name        *string        `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Description *string        `json:"description" form:"description" validate:"omitempty,max=2000"`
	Images      []entity.Image `json:"images" form:"-"`
}

func (req *ReferenceRequest) createInput(c echo.Context) (*usecase.ReferenceInput, error) {
	images, _, err := imageInputs(c, req.Images)
	if err != nil {
		return nil, err
	}

	input := &usecase.ReferenceInput{Images: images}
	if req.Name != nil {
		input.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		input.Description = *req.Description
	}

	return input, nil
}

func (req *ReferenceRequest) updateInput(c echo.Context) (*usecase.UpdateReferenceInput, error) {
	images, replace, err := imageInputs(c, req.Images)
	if err != nil {
		return nil, err
	}

	return &usecase.UpdateReferenceInput{
		Name:          req.Name,
		Description:   req.Description,
		Images:        images,
		ReplaceImages: replace,
	}, nil
}

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
	Logger     *slog.Logger
}

// CategoryHandler serves product categories.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
	logger     *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{
		categoryUC: params.CategoryUC,
		logger:     params.Logger,
	}
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	page, err := h.categoryUC.ListCategories(c.Request().Context(), pageRequest(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	category, err := h.categoryUC.GetCategory(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category, "")
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req ReferenceRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := req.createInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	category, err := h.categoryUC.CreateCategory(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ReferenceRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := req.updateInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	category, err := h.categoryUC.UpdateCategory(c.Request().Context(), id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category, "Category updated successfully")
}

// DeleteCategory removes a category; its products become uncategorized.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.categoryUC.DeleteCategory(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}
