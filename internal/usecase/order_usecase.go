package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderLineInput is one cart line posted at checkout.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	Items        []OrderLineInput
	ShippingInfo entity.ShippingInfo
	PaymentInfo  entity.PaymentInfo
}

// OrderUsecase defines the order lifecycle operations.
type OrderUsecase interface {
	// CreateOrder checks stock, prices the cart, stores the order and takes its stock in one transaction.
	CreateOrder(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID, page entity.PageRequest) (*Page[*entity.Order], error)
	ListOrders(ctx context.Context, filter entity.OrderFilter) (*Page[*entity.Order], error)
	// UpdateOrderStatus moves an order along its lifecycle, restoring stock when it is cancelled.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	CancelOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error)
	// DeleteOrder removes an order, returning its stock first when it still reserves any.
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
