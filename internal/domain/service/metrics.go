package service

import "github.com/shopspring/decimal"

// BusinessMetrics records domain counters alongside HTTP metrics.
type BusinessMetrics interface {
	OrderPlaced(total decimal.Decimal)
	OrderStatusChanged(status string)
	StockRejected()
	ReviewSubmitted(rating int)
	// SideEffectFailed counts a swallowed failure of a best-effort side effect.
	SideEffectFailed(kind string)
}
