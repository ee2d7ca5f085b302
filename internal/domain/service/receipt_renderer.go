package service

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrReceiptUnavailable is returned when receipt rendering is switched off.
var ErrReceiptUnavailable = errors.New("receipt rendering unavailable")

// ReceiptRenderer produces the PDF receipt attached to order confirmations.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, order *entity.Order, customer *entity.User) ([]byte, error)
}
