package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateOrderQR generates a PNG QR code linking to the order
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)
}
