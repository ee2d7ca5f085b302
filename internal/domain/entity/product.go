package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Rating and NumOfReviews are derived from its reviews.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Rating       float64         `json:"rating"`
	NumOfReviews int             `json:"numOfReviews"`
	CategoryID   *uuid.UUID      `json:"categoryId,omitempty"`
	TeamID       *uuid.UUID      `json:"teamId,omitempty"`
	Images       []Image         `json:"images"`
	CreatedBy    uuid.UUID       `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// InStock reports whether qty units can be taken from the product.
func (p *Product) InStock(qty int) bool {
	return qty > 0 && p.Stock >= qty
}

// PrimaryImageURL returns the first image URL, used for line item snapshots.
func (p *Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}

	return p.Images[0].URL
}

// ProductSort selects the ordering of product listings.
type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortRating    ProductSort = "rating"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Keyword    string
	CategoryID *uuid.UUID
	TeamID     *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *float64
	InStock    bool
	Sort       ProductSort
	Page       PageRequest
}
