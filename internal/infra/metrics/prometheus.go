// Package metrics exposes HTTP and business metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	namespace   = "storefront"
	defaultPath = "/metrics"
)

// Registry owns every storefront collector.
type Registry struct {
	registry *prometheus.Registry
	path     string
	enabled  bool

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	ordersPlaced      prometheus.Counter
	orderRevenue      prometheus.Counter
	orderTransitions  *prometheus.CounterVec
	stockRejections   prometheus.Counter
	reviewsSubmitted  *prometheus.CounterVec
	sideEffectFailure *prometheus.CounterVec
}

// NewRegistry registers the collectors on a private registry.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		path:     defaultPath,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders placed",
		}),
		orderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_revenue_total",
			Help:      "Sum of order totals at placement",
		}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status transitions by target status",
		}, []string{"status"}),
		stockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_stock_rejections_total",
			Help:      "Orders rejected for insufficient stock",
		}),
		reviewsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Reviews submitted by rating",
		}, []string{"rating"}),
		sideEffectFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Best-effort side effects that failed and were swallowed",
		}, []string{"kind"}),
	}

	if cfg.Metrics != nil {
		r.enabled = cfg.Metrics.Enabled
		if cfg.Metrics.Path != "" {
			r.path = cfg.Metrics.Path
		}
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestsTotal,
		r.requestDuration,
		r.ordersPlaced,
		r.orderRevenue,
		r.orderTransitions,
		r.stockRejections,
		r.reviewsSubmitted,
		r.sideEffectFailure,
	)

	return r
}

// Enabled reports whether the scrape endpoint should be mounted.
func (r *Registry) Enabled() bool { return r.enabled }

// Path is the scrape endpoint path.
func (r *Registry) Path() string { return r.path }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request count and latency keyed by the matched route.
func (r *Registry) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Render now so the recorded status is the one sent to the client.
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status

			r.requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			r.requestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// OrderPlaced implements service.BusinessMetrics.
func (r *Registry) OrderPlaced(total decimal.Decimal) {
	r.ordersPlaced.Inc()
	r.orderRevenue.Add(total.InexactFloat64())
}

func (r *Registry) OrderStatusChanged(status string) {
	r.orderTransitions.WithLabelValues(status).Inc()
}

func (r *Registry) StockRejected() {
	r.stockRejections.Inc()
}

func (r *Registry) ReviewSubmitted(rating int) {
	r.reviewsSubmitted.WithLabelValues(strconv.Itoa(rating)).Inc()
}

func (r *Registry) SideEffectFailed(kind string) {
	r.sideEffectFailure.WithLabelValues(kind).Inc()
}

// NoopBusinessMetrics discards every observation.
type NoopBusinessMetrics struct{}

func (NoopBusinessMetrics) OrderPlaced(decimal.Decimal) {}
func (NoopBusinessMetrics) OrderStatusChanged(string)   {}
func (NoopBusinessMetrics) StockRejected()              {}
func (NoopBusinessMetrics) ReviewSubmitted(int)         {}
func (NoopBusinessMetrics) SideEffectFailed(string)     {}

func asBusinessMetrics(r *Registry) service.BusinessMetrics { return r }

// Module provides the metrics registry and exposes it as service.BusinessMetrics.
var Module = fx.Options(
	fx.Provide(NewRegistry, asBusinessMetrics),
)
