package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// DashboardRepository runs read-only reporting aggregations.
type DashboardRepository interface {
	Summary(ctx context.Context) (*entity.DashboardSummary, error)

	// SalesByMonth groups delivered revenue by month name, January first.
	SalesByMonth(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error)

	// SalesByYear groups delivered revenue by calendar year.
	SalesByYear(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error)

	// SalesByDay groups delivered revenue by calendar day (YYYY-MM-DD).
	SalesByDay(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error)

	// TopProducts ranks products by ordered quantity across orders of any status.
	TopProducts(ctx context.Context, window entity.DateRange, limit int) ([]entity.TopProduct, error)

	CategoryDistribution(ctx context.Context) ([]entity.CategoryCount, error)

	// RevenueByCategory attributes delivered line item revenue to each product's current category.
	RevenueByCategory(ctx context.Context, window entity.DateRange) ([]entity.CategoryRevenue, error)

	OrderStatusDistribution(ctx context.Context) ([]entity.StatusCount, error)
}
