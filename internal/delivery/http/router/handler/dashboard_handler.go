package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
	Logger      *slog.Logger
}

// DashboardHandler serves the admin reports.
type DashboardHandler struct {
	dashboardUC usecase.DashboardUsecase
	logger      *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler.
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: params.DashboardUC,
		logger:      params.Logger,
	}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.dashboardUC.Summary(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// Sales reports delivered revenue grouped by month, year, or day.
func (h *DashboardHandler) Sales(c echo.Context) error {
	window, err := dateRange(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	buckets, err := h.dashboardUC.Sales(c.Request().Context(), usecase.SalesGrouping(c.QueryParam("groupBy")), window)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, buckets, "")
}

// TopProducts ranks products by ordered quantity.
func (h *DashboardHandler) TopProducts(c echo.Context) error {
	window, err := dateRange(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("invalid limit"))
		}
	}

	products, err := h.dashboardUC.TopProducts(c.Request().Context(), window, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

func (h *DashboardHandler) CategoryDistribution(c echo.Context) error {
	counts, err := h.dashboardUC.CategoryDistribution(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, counts, "")
}

// RevenueByCategory attributes delivered revenue to the current product categories.
func (h *DashboardHandler) RevenueByCategory(c echo.Context) error {
	window, err := dateRange(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	revenue, err := h.dashboardUC.RevenueByCategory(c.Request().Context(), window)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, revenue, "")
}

func (h *DashboardHandler) OrderStatusDistribution(c echo.Context) error {
	counts, err := h.dashboardUC.OrderStatusDistribution(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, counts, "")
}
