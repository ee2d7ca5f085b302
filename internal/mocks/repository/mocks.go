// Package repository provides testify mocks of the domain repository interfaces.
package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockDashboardRepository is a mock of repository.DashboardRepository.
type MockDashboardRepository struct {
	mock.Mock
}

// NewMockDashboardRepository creates a MockDashboardRepository that asserts its expectations on cleanup.
func NewMockDashboardRepository(t *testing.T) *MockDashboardRepository {
	m := &MockDashboardRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDashboardRepository) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*entity.DashboardSummary)

	return summary, args.Error(1)
}

func (m *MockDashboardRepository) SalesByMonth(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error) {
	return m.sales(m.Called(ctx, window))
}

func (m *MockDashboardRepository) SalesByYear(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error) {
	return m.sales(m.Called(ctx, window))
}

func (m *MockDashboardRepository) SalesByDay(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error) {
	return m.sales(m.Called(ctx, window))
}

func (m *MockDashboardRepository) sales(args mock.Arguments) ([]entity.SalesBucket, error) {
	buckets, _ := args.Get(0).([]entity.SalesBucket)

	return buckets, args.Error(1)
}

func (m *MockDashboardRepository) TopProducts(ctx context.Context, window entity.DateRange, limit int) ([]entity.TopProduct, error) {
	args := m.Called(ctx, window, limit)
	products, _ := args.Get(0).([]entity.TopProduct)

	return products, args.Error(1)
}

func (m *MockDashboardRepository) CategoryDistribution(ctx context.Context) ([]entity.CategoryCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]entity.CategoryCount)

	return counts, args.Error(1)
}

func (m *MockDashboardRepository) RevenueByCategory(ctx context.Context, window entity.DateRange) ([]entity.CategoryRevenue, error) {
	args := m.Called(ctx, window)
	revenue, _ := args.Get(0).([]entity.CategoryRevenue)

	return revenue, args.Error(1)
}

func (m *MockDashboardRepository) OrderStatusDistribution(ctx context.Context) ([]entity.StatusCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]entity.StatusCount)

	return counts, args.Error(1)
}
