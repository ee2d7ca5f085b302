package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock        int             `gorm:"not null"`
	Rating       float64         `gorm:"not null;default:0"`
	NumOfReviews int             `gorm:"not null;default:0"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	TeamID       *uuid.UUID      `gorm:"type:uuid;index"`
	Images       []ImageData     `gorm:"type:jsonb;serializer:json"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid"`
	CreatedAt    time.Time       `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string      `gorm:"type:text"`
	Images      []ImageData `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// TeamModel mirrors the 'teams' table.
type TeamModel struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string      `gorm:"type:text"`
	Images      []ImageData `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TeamModel) TableName() string {
	return "teams"
}
