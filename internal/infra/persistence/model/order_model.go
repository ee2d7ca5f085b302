package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Line items live in 'order_items'.
type OrderModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	ShippingAddress    string `gorm:"type:varchar(255)"`
	ShippingCity       string `gorm:"type:varchar(100)"`
	ShippingState      string `gorm:"type:varchar(100)"`
	ShippingCountry    string `gorm:"type:varchar(100)"`
	ShippingPostalCode string `gorm:"type:varchar(20)"`
	ShippingPhone      string `gorm:"type:varchar(32)"`

	ItemsPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	PaymentID     string `gorm:"type:varchar(255)"`
	PaymentStatus string `gorm:"type:varchar(50)"`
	PaidAt        *time.Time

	Status      string `gorm:"type:varchar(20);not null;index"`
	DeliveredAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Position keeps the checkout order of the lines.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Image     string          `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
