package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func newMockDashboardRepository(t *testing.T) (*dashboardRepository, sqlmock.Sqlmock) {
	t.Helper()

	gormDB, mock := newMockGormDB(t)
	repo, ok := NewDashboardRepository(gormDB).(*dashboardRepository)
	require.True(t, ok)

	return repo, mock
}

func TestDashboardRepository_Summary(t *testing.T) {
	repo, mock := newMockDashboardRepository(t)

	rows := sqlmock.NewRows([]string{"products", "orders", "users", "reviews", "out_of_stock", "total_sales", "delivered"}).
		AddRow(12, 30, 8, 5, 2, "1520.50", 9)
	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = $1) AS total_sales")).
		WithArgs("Delivered", "Delivered").
		WillReturnRows(rows)

	summary, err := repo.Summary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 12, summary.Products)
	assert.EqualValues(t, 2, summary.OutOfStock)
	assert.EqualValues(t, 9, summary.Delivered)
	assert.True(t, summary.TotalSales.Equal(decimal.RequireFromString("1520.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_SalesByMonth(t *testing.T) {
	repo, mock := newMockDashboardRepository(t)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"bucket", "sales", "orders"}).
		AddRow("01", "100.00", 2).
		AddRow("03", "42.10", 1)
	mock.ExpectQuery(`(?s)SELECT TO_CHAR\(created_at, 'MM'\) AS bucket.*WHERE status = \$1 AND created_at >= \$2 AND created_at <= \$3`).
		WithArgs("Delivered", start, end).
		WillReturnRows(rows)

	buckets, err := repo.SalesByMonth(context.Background(), entity.DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "January", buckets[0].Label)
	assert.Equal(t, "March", buckets[1].Label)
	assert.True(t, buckets[1].Sales.Equal(decimal.RequireFromString("42.10")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_SalesByYearWithoutWindow(t *testing.T) {
	repo, mock := newMockDashboardRepository(t)

	rows := sqlmock.NewRows([]string{"bucket", "sales", "orders"}).AddRow("2025", "900", 7)
	mock.ExpectQuery(`(?s)TO_CHAR\(created_at, 'YYYY'\) AS bucket.*WHERE status = \$1\s+GROUP BY 1`).
		WithArgs("Delivered").
		WillReturnRows(rows)

	buckets, err := repo.SalesByYear(context.Background(), entity.DateRange{})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2025", buckets[0].Label)
	assert.EqualValues(t, 7, buckets[0].Orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_TopProducts(t *testing.T) {
	repo, mock := newMockDashboardRepository(t)

	productID := uuid.New()
	rows := sqlmock.NewRows([]string{"product_id", "name", "quantity"}).AddRow(productID.String(), "Home Kit", 14)
	mock.ExpectQuery(`(?s)FROM order_items oi.*LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(rows)

	top, err := repo.TopProducts(context.Background(), entity.DateRange{}, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, productID, top[0].ProductID)
	assert.EqualValues(t, 14, top[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_CategoryAggregations(t *testing.T) {
	repo, mock := newMockDashboardRepository(t)

	mock.ExpectQuery(`SELECT COALESCE\(c.name, \$1\) AS category, COUNT\(p.id\) AS count`).
		WithArgs(entity.UncategorizedLabel).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("Kits", 4).
			AddRow(entity.UncategorizedLabel, 1))

	mock.ExpectQuery(`(?s)SUM\(oi.price \* oi.quantity\).*WHERE o.status = \$2`).
		WithArgs(entity.UncategorizedLabel, "Delivered").
		WillReturnRows(sqlmock.NewRows([]string{"category", "revenue"}).
			AddRow("Kits", "300.00").
			AddRow(entity.UncategorizedLabel, "20.00"))

	counts, err := repo.CategoryDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, entity.UncategorizedLabel, counts[1].Category)

	revenue, err := repo.RevenueByCategory(context.Background(), entity.DateRange{})
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.True(t, revenue[0].Revenue.Equal(decimal.NewFromInt(300)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_OrderStatusDistributionFillsZeros(t *testing.T) {
	repo, mock := newMockDashboardRepository(t)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM orders GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Processing", 3).
			AddRow("Cancelled", 1))

	counts, err := repo.OrderStatusDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 4)
	assert.Equal(t, entity.StatusCount{Status: entity.OrderStatusProcessing, Count: 3}, counts[0])
	assert.Equal(t, entity.StatusCount{Status: entity.OrderStatusShipped, Count: 0}, counts[1])
	assert.Equal(t, entity.StatusCount{Status: entity.OrderStatusCancelled, Count: 1}, counts[3])
	assert.NoError(t, mock.ExpectationsWereMet())
}
