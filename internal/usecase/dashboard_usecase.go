package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SalesGrouping selects the time bucket of a sales report.
type SalesGrouping string

const (
	SalesByMonth SalesGrouping = "month"
	SalesByYear  SalesGrouping = "year"
	SalesByDay   SalesGrouping = "day"
)

// IsValid checks if the SalesGrouping is a valid value.
func (g SalesGrouping) IsValid() bool {
	return g == SalesByMonth || g == SalesByYear || g == SalesByDay
}

// DashboardUsecase defines the admin reporting operations. Every call reads live data.
type DashboardUsecase interface {
	Summary(ctx context.Context) (*entity.DashboardSummary, error)
	Sales(ctx context.Context, grouping SalesGrouping, window entity.DateRange) ([]entity.SalesBucket, error)
	TopProducts(ctx context.Context, window entity.DateRange, limit int) ([]entity.TopProduct, error)
	CategoryDistribution(ctx context.Context) ([]entity.CategoryCount, error)
	RevenueByCategory(ctx context.Context, window entity.DateRange) ([]entity.CategoryRevenue, error)
	OrderStatusDistribution(ctx context.Context) ([]entity.StatusCount, error)
}
