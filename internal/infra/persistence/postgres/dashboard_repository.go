package postgres

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// dashboardRepository runs the reporting aggregations. Every query is routed to a read replica when one is configured.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository is the constructor for dashboardRepository.
func NewDashboardRepository(db *gorm.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (repo *dashboardRepository) reader(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Clauses(dbresolver.Read)
}

// windowClause renders the optional created_at window of column as SQL conditions.
func windowClause(column string, window entity.DateRange) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if window.Start != nil {
		conds = append(conds, column+" >= ?")
		args = append(args, *window.Start)
	}
	if window.End != nil {
		conds = append(conds, column+" <= ?")
		args = append(args, *window.End)
	}
	if len(conds) == 0 {
		return "", nil
	}

	return " AND " + strings.Join(conds, " AND "), args
}

type summaryRow struct {
	Products   int64
	Orders     int64
	Users      int64
	Reviews    int64
	OutOfStock int64
	TotalSales decimal.Decimal
	Delivered  int64
}

const summaryQuery = `
SELECT
  (SELECT COUNT(*) FROM products) AS products,
  (SELECT COUNT(*) FROM orders) AS orders,
  (SELECT COUNT(*) FROM users) AS users,
  (SELECT COUNT(*) FROM reviews) AS reviews,
  (SELECT COUNT(*) FROM products WHERE stock <= 0) AS out_of_stock,
  (SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = ?) AS total_sales,
  (SELECT COUNT(*) FROM orders WHERE status = ?) AS delivered`

// Summary returns the store-wide counters.
func (repo *dashboardRepository) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	var row summaryRow

	delivered := string(entity.OrderStatusDelivered)
	if err := repo.reader(ctx).Raw(summaryQuery, delivered, delivered).Scan(&row).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load dashboard summary")
	}

	return &entity.DashboardSummary{
		Products:   row.Products,
		Orders:     row.Orders,
		Users:      row.Users,
		Reviews:    row.Reviews,
		OutOfStock: row.OutOfStock,
		TotalSales: row.TotalSales,
		Delivered:  row.Delivered,
	}, nil
}

type salesRow struct {
	Bucket string
	Sales  decimal.Decimal
	Orders int64
}

func (repo *dashboardRepository) salesBy(ctx context.Context, bucketExpr string, window entity.DateRange) ([]salesRow, error) {
	where, windowArgs := windowClause("created_at", window)
	query := `
SELECT ` + bucketExpr + ` AS bucket, COALESCE(SUM(total_price), 0) AS sales, COUNT(*) AS orders
FROM orders
WHERE status = ?` + where + `
GROUP BY 1
ORDER BY 1`

	args := append([]any{string(entity.OrderStatusDelivered)}, windowArgs...)

	var rows []salesRow
	if err := repo.reader(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate sales")
	}

	return rows, nil
}

// SalesByMonth groups delivered revenue by month name, January first. Months of different years share a bucket.
func (repo *dashboardRepository) SalesByMonth(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error) {
	rows, err := repo.salesBy(ctx, "TO_CHAR(created_at, 'MM')", window)
	if err != nil {
		return nil, err
	}

	buckets := make([]entity.SalesBucket, 0, len(rows))
	for _, row := range rows {
		month, err := time.Parse("01", row.Bucket)
		if err != nil {
			return nil, errors.Wrapf(err, "unexpected month bucket %q", row.Bucket)
		}
		buckets = append(buckets, entity.SalesBucket{
			Label:  month.Month().String(),
			Sales:  row.Sales,
			Orders: row.Orders,
		})
	}

	return buckets, nil
}

// SalesByYear groups delivered revenue by calendar year.
func (repo *dashboardRepository) SalesByYear(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error) {
	rows, err := repo.salesBy(ctx, "TO_CHAR(created_at, 'YYYY')", window)
	if err != nil {
		return nil, err
	}

	return toSalesBuckets(rows), nil
}

// SalesByDay groups delivered revenue by calendar day.
func (repo *dashboardRepository) SalesByDay(ctx context.Context, window entity.DateRange) ([]entity.SalesBucket, error) {
	rows, err := repo.salesBy(ctx, "TO_CHAR(created_at, 'YYYY-MM-DD')", window)
	if err != nil {
		return nil, err
	}

	return toSalesBuckets(rows), nil
}

func toSalesBuckets(rows []salesRow) []entity.SalesBucket {
	buckets := make([]entity.SalesBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, entity.SalesBucket{
			Label:  row.Bucket,
			Sales:  row.Sales,
			Orders: row.Orders,
		})
	}

	return buckets
}

type topProductRow struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int64
}

// TopProducts ranks products by ordered quantity across orders of any status.
// The current product name wins over the snapshot name when the product still exists.
func (repo *dashboardRepository) TopProducts(ctx context.Context, window entity.DateRange, limit int) ([]entity.TopProduct, error) {
	where, windowArgs := windowClause("o.created_at", window)
	query := `
SELECT oi.product_id AS product_id, COALESCE(MAX(p.name), MAX(oi.name)) AS name, SUM(oi.quantity) AS quantity
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
LEFT JOIN products p ON p.id = oi.product_id
WHERE 1 = 1` + where + `
GROUP BY oi.product_id
ORDER BY quantity DESC, name ASC
LIMIT ?`

	args := append(windowArgs, limit)

	var rows []topProductRow
	if err := repo.reader(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank top products")
	}

	products := make([]entity.TopProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, entity.TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
		})
	}

	return products, nil
}

type categoryCountRow struct {
	Category string
	Count    int64
}

// CategoryDistribution counts products per category, with products lacking one under the uncategorized label.
func (repo *dashboardRepository) CategoryDistribution(ctx context.Context) ([]entity.CategoryCount, error) {
	const query = `
SELECT COALESCE(c.name, ?) AS category, COUNT(p.id) AS count
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
GROUP BY 1
ORDER BY count DESC, category ASC`

	var rows []categoryCountRow
	if err := repo.reader(ctx).Raw(query, entity.UncategorizedLabel).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate category distribution")
	}

	counts := make([]entity.CategoryCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entity.CategoryCount{Category: row.Category, Count: row.Count})
	}

	return counts, nil
}

type categoryRevenueRow struct {
	Category string
	Revenue  decimal.Decimal
}

// RevenueByCategory attributes delivered line item revenue to each product's current category.
func (repo *dashboardRepository) RevenueByCategory(ctx context.Context, window entity.DateRange) ([]entity.CategoryRevenue, error) {
	where, windowArgs := windowClause("o.created_at", window)
	query := `
SELECT COALESCE(c.name, ?) AS category, COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
LEFT JOIN products p ON p.id = oi.product_id
LEFT JOIN categories c ON c.id = p.category_id
WHERE o.status = ?` + where + `
GROUP BY 1
ORDER BY revenue DESC, category ASC`

	args := append([]any{entity.UncategorizedLabel, string(entity.OrderStatusDelivered)}, windowArgs...)

	var rows []categoryRevenueRow
	if err := repo.reader(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate revenue by category")
	}

	revenue := make([]entity.CategoryRevenue, 0, len(rows))
	for _, row := range rows {
		revenue = append(revenue, entity.CategoryRevenue{Category: row.Category, Revenue: row.Revenue})
	}

	return revenue, nil
}

type statusCountRow struct {
	Status string
	Count  int64
}

// OrderStatusDistribution counts orders per status. Statuses without orders are reported as zero.
func (repo *dashboardRepository) OrderStatusDistribution(ctx context.Context) ([]entity.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM orders GROUP BY status`

	var rows []statusCountRow
	if err := repo.reader(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate order statuses")
	}

	byStatus := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		byStatus[entity.OrderStatus(row.Status)] = row.Count
	}

	statuses := entity.OrderStatuses()
	counts := make([]entity.StatusCount, 0, len(statuses))
	for _, status := range statuses {
		counts = append(counts, entity.StatusCount{Status: status, Count: byStatus[status]})
	}

	return counts, nil
}
