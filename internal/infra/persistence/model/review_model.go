package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. One review per (user, product, order).
type ReviewModel struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product_order"`
	ProductID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product_order;index"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product_order"`
	Rating    int         `gorm:"not null"`
	Comment   string      `gorm:"type:text"`
	Images    []ImageData `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time   `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// AllModels lists every persistence model, used by code generation and test schemas.
func AllModels() []any {
	return []any{
		&UserModel{},
		&ProductModel{},
		&CategoryModel{},
		&TeamModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
	}
}
