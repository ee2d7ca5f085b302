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

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout and the order lifecycle.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderLineRequest is one cart line.
type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// ShippingInfoRequest is the delivery address.
type ShippingInfoRequest struct {
	Address    string `json:"address" validate:"required,max=300"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	Phone      string `json:"phone" validate:"required,max=32"`
}

// PaymentInfoRequest is the payment record produced by the client's payment flow.
type PaymentInfoRequest struct {
	ID     string `json:"id" validate:"max=200"`
	Status string `json:"status" validate:"max=50"`
}

// CreateOrderRequest is the checkout body.
type CreateOrderRequest struct {
	Items        []OrderLineRequest  `json:"orderItems" validate:"required,min=1,dive"`
	ShippingInfo ShippingInfoRequest `json:"shippingInfo"`
	PaymentInfo  PaymentInfoRequest  `json:"paymentInfo"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing Shipped Delivered Cancelled"`
}

// ListOrdersQuery holds the admin order filters.
type ListOrdersQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=Processing Shipped Delivered Cancelled"`
	UserID string `query:"userId" validate:"omitempty,uuid"`
}

func (req *CreateOrderRequest) toInput() (*usecase.CreateOrderInput, error) {
	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, line := range req.Items {
		productID, err := optionalID(line.ProductID, "productId")
		if err != nil {
			return nil, err
		}
		items = append(items, usecase.OrderLineInput{
			ProductID: *productID,
			Quantity:  line.Quantity,
		})
	}

	return &usecase.CreateOrderInput{
		Items: items,
		ShippingInfo: entity.ShippingInfo{
			Address:    req.ShippingInfo.Address,
			City:       req.ShippingInfo.City,
			State:      req.ShippingInfo.State,
			Country:    req.ShippingInfo.Country,
			PostalCode: req.ShippingInfo.PostalCode,
			Phone:      req.ShippingInfo.Phone,
		},
		PaymentInfo: entity.PaymentInfo{
			ID:     req.PaymentInfo.ID,
			Status: req.PaymentInfo.Status,
		},
	}, nil
}

// CreateOrder handles checkout.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// GetOrder returns an order to its owner or an admin.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ListMyOrders lists the caller's orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	page, err := h.orderUC.ListMyOrders(c.Request().Context(), userID, pageRequest(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

// ListOrders lists every order for admins.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	var query ListOrdersQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	userID, err := optionalID(query.UserID, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.orderUC.ListOrders(c.Request().Context(), entity.OrderFilter{
		UserID: userID,
		Status: entity.OrderStatus(query.Status),
		Page:   pageRequest(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

// UpdateOrderStatus handles admin status changes.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), id, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// CancelOrder cancels an order for its owner or an admin.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled successfully")
}

// DeleteOrder removes an order, returning reserved stock.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}
