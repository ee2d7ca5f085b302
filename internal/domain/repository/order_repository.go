package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusChanged is returned when a conditional write finds the order
	// in a different status than the caller read.
	ErrOrderStatusChanged = errors.New("order status changed concurrently")
)

// OrderRepository defines persistence operations for orders and their line items.
type OrderRepository interface {
	// Create persists the order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its line items in their original order.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns one page of orders matching the filter, newest first.
	List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error)

	// FindByIDForUpdate is FindByID that also locks the order row for the rest
	// of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus writes the status and its timestamps if the stored status is
	// still from, otherwise it returns ErrOrderStatusChanged.
	UpdateStatus(ctx context.Context, order *entity.Order, from entity.OrderStatus) error

	// Delete removes the order and its line items if the stored status is still
	// status, otherwise it returns ErrOrderStatusChanged.
	Delete(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
