package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

const (
	defaultTopProducts = 5
	maxTopProducts     = 50
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        *slog.Logger
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	DashboardRepo repository.DashboardRepository
	Logger        *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		dashboardRepo: params.DashboardRepo,
		logger:        params.Logger,
	}
}

func (srv *dashboardService) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	summary, err := srv.dashboardRepo.Summary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dashboard summary")
	}

	return summary, nil
}

// Sales reports delivered revenue grouped by month, year or day.
func (srv *dashboardService) Sales(ctx context.Context, grouping usecase.SalesGrouping, window entity.DateRange) ([]entity.SalesBucket, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	var (
		buckets []entity.SalesBucket
		err     error
	)
	switch grouping {
	case usecase.SalesByMonth, "":
		buckets, err = srv.dashboardRepo.SalesByMonth(ctx, window)
	case usecase.SalesByYear:
		buckets, err = srv.dashboardRepo.SalesByYear(ctx, window)
	case usecase.SalesByDay:
		buckets, err = srv.dashboardRepo.SalesByDay(ctx, window)
	default:
		return nil, domainerrors.ErrValidationFailed.
			WithDetails("groupBy must be one of month, year, day").
			WrapMessage("invalid sales grouping")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to report sales by %s", grouping)
	}

	return buckets, nil
}

func (srv *dashboardService) TopProducts(ctx context.Context, window entity.DateRange, limit int) ([]entity.TopProduct, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultTopProducts
	case limit > maxTopProducts:
		limit = maxTopProducts
	}

	products, err := srv.dashboardRepo.TopProducts(ctx, window, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank products")
	}

	return products, nil
}

func (srv *dashboardService) CategoryDistribution(ctx context.Context) ([]entity.CategoryCount, error) {
	counts, err := srv.dashboardRepo.CategoryDistribution(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products per category")
	}

	return counts, nil
}

func (srv *dashboardService) RevenueByCategory(ctx context.Context, window entity.DateRange) ([]entity.CategoryRevenue, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	revenue, err := srv.dashboardRepo.RevenueByCategory(ctx, window)
	if err != nil {
		return nil, errors.Wrap(err, "failed to report revenue by category")
	}

	return revenue, nil
}

func (srv *dashboardService) OrderStatusDistribution(ctx context.Context) ([]entity.StatusCount, error) {
	counts, err := srv.dashboardRepo.OrderStatusDistribution(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders per status")
	}

	return counts, nil
}

func validateWindow(window entity.DateRange) error {
	if window.Start != nil && window.End != nil && window.Start.After(*window.End) {
		return domainerrors.ErrValidationFailed.
			WithDetails("startDate must not be after endDate").
			WrapMessage("invalid date window")
	}

	return nil
}
