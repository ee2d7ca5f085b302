package impl

import (
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPricingPolicy_Price(t *testing.T) {
	policy := newPricingPolicy(config.PricingConfig{TaxRate: 0.08, ShippingFee: 7.5, FreeShippingThreshold: 100})

	line := func(price string, qty int) entity.OrderItem {
		return entity.OrderItem{Price: decimal.RequireFromString(price), Quantity: qty}
	}

	cases := []struct {
		name     string
		items    []entity.OrderItem
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{
			name:     "below threshold pays shipping and rounds tax to cents",
			items:    []entity.OrderItem{line("19.99", 3)},
			subtotal: "59.97",
			tax:      "4.80",
			shipping: "7.5",
			total:    "72.27",
		},
		{
			name:     "threshold reached ships free",
			items:    []entity.OrderItem{line("50", 2)},
			subtotal: "100",
			tax:      "8",
			shipping: "0",
			total:    "108",
		},
		{
			name:     "lines are summed exactly",
			items:    []entity.OrderItem{line("33.33", 1), line("66.67", 1)},
			subtotal: "100",
			tax:      "8",
			shipping: "0",
			total:    "108",
		},
		{
			name:     "no items",
			subtotal: "0",
			tax:      "0",
			shipping: "7.5",
			total:    "7.5",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.price(tc.items)

			assert.True(t, decimal.RequireFromString(tc.subtotal).Equal(got.ItemsPrice), "items %s", got.ItemsPrice)
			assert.True(t, decimal.RequireFromString(tc.tax).Equal(got.TaxPrice), "tax %s", got.TaxPrice)
			assert.True(t, decimal.RequireFromString(tc.shipping).Equal(got.ShippingPrice), "shipping %s", got.ShippingPrice)
			assert.True(t, decimal.RequireFromString(tc.total).Equal(got.TotalPrice), "total %s", got.TotalPrice)
		})
	}
}
