package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatus("Lost").IsValid())
}

func TestOrder_ContainsProduct(t *testing.T) {
	productID := uuid.New()
	order := &Order{Items: []OrderItem{{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(3)}}}

	assert.True(t, order.ContainsProduct(productID))
	assert.False(t, order.ContainsProduct(uuid.New()))
	assert.True(t, order.Items[0].Subtotal().Equal(decimal.NewFromInt(3)))
}

func TestRatingStats_Rounded(t *testing.T) {
	assert.Equal(t, 0.0, RatingStats{}.Rounded())
	assert.Equal(t, 4.5, RatingStats{Average: 4.5, Count: 2}.Rounded())
	assert.Equal(t, 4.3, RatingStats{Average: 13.0 / 3.0, Count: 3}.Rounded())
	assert.Equal(t, 3.7, RatingStats{Average: 11.0 / 3.0, Count: 3}.Rounded())
}

func TestAuthProvider_Upgrades(t *testing.T) {
	assert.Equal(t, AuthProviderBoth, AuthProviderEmail.WithSocial())
	assert.Equal(t, AuthProviderGoogle, AuthProviderGoogle.WithSocial())
	assert.Equal(t, AuthProviderBoth, AuthProviderFacebook.WithPassword())
	assert.Equal(t, AuthProviderEmail, AuthProviderEmail.WithPassword())
}

func TestPagination(t *testing.T) {
	req := PageRequest{Page: 0, Limit: 500}.Normalize(20, 100)
	assert.Equal(t, PageRequest{Page: 1, Limit: 100}, req)
	assert.Equal(t, 0, req.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())

	p := NewPagination(PageRequest{Page: 2, Limit: 20}, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Total)
}
