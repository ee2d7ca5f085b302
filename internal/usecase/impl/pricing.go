package impl

import (
	"storefront/config"
	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// pricingPolicy computes the price breakdown of a checkout once, at order creation.
type pricingPolicy struct {
	taxRate               decimal.Decimal
	shippingFee           decimal.Decimal
	freeShippingThreshold decimal.Decimal
}

func newPricingPolicy(cfg config.PricingConfig) pricingPolicy {
	return pricingPolicy{
		taxRate:               decimal.NewFromFloat(cfg.TaxRate),
		shippingFee:           decimal.NewFromFloat(cfg.ShippingFee),
		freeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
	}
}

// price sums the line items, adds tax rounded to cents, and waives shipping at
// or above the free shipping threshold.
func (p pricingPolicy) price(items []entity.OrderItem) entity.PriceBreakdown {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.Subtotal())
	}

	taxPrice := itemsPrice.Mul(p.taxRate).Round(2)

	shippingPrice := p.shippingFee
	if itemsPrice.GreaterThanOrEqual(p.freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	return entity.PriceBreakdown{
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: shippingPrice,
		TotalPrice:    itemsPrice.Add(taxPrice).Add(shippingPrice),
	}
}
