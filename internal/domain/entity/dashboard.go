package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange is an optional inclusive reporting window.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// DashboardSummary holds store-wide counters.
type DashboardSummary struct {
	Products   int64           `json:"products"`
	Orders     int64           `json:"orders"`
	Users      int64           `json:"users"`
	Reviews    int64           `json:"reviews"`
	OutOfStock int64           `json:"outOfStock"`
	TotalSales decimal.Decimal `json:"totalSales"`
	Delivered  int64           `json:"deliveredOrders"`
}

// SalesBucket is the delivered revenue of one time bucket.
type SalesBucket struct {
	Label  string          `json:"label"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int64           `json:"orders"`
}

// TopProduct is a product ranked by ordered quantity.
type TopProduct struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
}

// CategoryCount is the number of products in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CategoryRevenue is the delivered revenue attributed to a category.
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StatusCount is the number of orders in a status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}
