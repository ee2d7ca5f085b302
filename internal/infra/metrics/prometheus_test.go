package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Config(t *testing.T) {
	r := NewRegistry(&config.Config{})
	assert.False(t, r.Enabled())
	assert.Equal(t, "/metrics", r.Path())

	r = NewRegistry(&config.Config{Metrics: &config.MetricsConfig{Enabled: true, Path: "/internal/metrics"}})
	assert.True(t, r.Enabled())
	assert.Equal(t, "/internal/metrics", r.Path())
}

func TestRegistry_Middleware(t *testing.T) {
	r := NewRegistry(&config.Config{})

	e := echo.New()
	e.Use(r.Middleware())
	e.GET("/api/v1/products/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/v1/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	})

	for _, path := range []string{"/api/v1/products/1", "/api/v1/products/2", "/api/v1/fail"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/fail", "400")))
}

func TestRegistry_BusinessMetrics(t *testing.T) {
	r := NewRegistry(&config.Config{})

	r.OrderPlaced(decimal.RequireFromString("120.50"))
	r.OrderPlaced(decimal.RequireFromString("9.50"))
	r.OrderStatusChanged("Shipped")
	r.StockRejected()
	r.ReviewSubmitted(5)
	r.SideEffectFailed("confirmation_email")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ordersPlaced))
	assert.InDelta(t, 130.0, testutil.ToFloat64(r.orderRevenue), 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.orderTransitions.WithLabelValues("Shipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stockRejections))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reviewsSubmitted.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sideEffectFailure.WithLabelValues("confirmation_email")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry(&config.Config{})
	r.StockRejected()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "storefront_order_stock_rejections_total 1"))
}
