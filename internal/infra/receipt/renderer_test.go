package receipt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type capturePrinter struct {
	html string
	err  error
}

func (p *capturePrinter) PrintHTML(_ context.Context, html string) ([]byte, error) {
	p.html = html
	if p.err != nil {
		return nil, p.err
	}

	return []byte("%PDF-1.7"), nil
}

type stubQRCode struct {
	err error
}

func (s stubQRCode) GenerateOrderQR(uuid.UUID) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:     uuid.MustParse("0192f1a4-7c3e-7b1a-9d2e-5f6a7b8c9d0e"),
		UserID: uuid.New(),
		Items: []entity.OrderItem{
			{ProductID: uuid.New(), Name: "Home Jersey", Price: decimal.RequireFromString("50"), Quantity: 2},
		},
		ShippingInfo: entity.ShippingInfo{Address: "1 Main St", City: "Springfield", Country: "US"},
		PriceBreakdown: entity.PriceBreakdown{
			ItemsPrice:    decimal.RequireFromString("100"),
			TaxPrice:      decimal.RequireFromString("10"),
			ShippingPrice: decimal.Zero,
			TotalPrice:    decimal.RequireFromString("110"),
		},
		PaymentInfo: entity.PaymentInfo{ID: "pi_123", Status: "succeeded"},
		Status:      entity.OrderStatusProcessing,
		CreatedAt:   time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderReceipt(t *testing.T) {
	p := &capturePrinter{}
	renderer, err := newHTMLReceiptRenderer(p, stubQRCode{}, "Fan Shop", testLogger())
	require.NoError(t, err)

	pdf, err := renderer.RenderReceipt(context.Background(), sampleOrder(), &entity.User{Name: "jane doe"})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)

	assert.Contains(t, p.html, "Fan Shop")
	assert.Contains(t, p.html, "0192F1A4")
	assert.Contains(t, p.html, "Jane Doe")
	assert.Contains(t, p.html, "Home Jersey")
	assert.Contains(t, p.html, "$100.00")
	assert.Contains(t, p.html, "$110.00")
	assert.Contains(t, p.html, "March 4, 2026")
	assert.Contains(t, p.html, "data:image/png;base64,")
}

func TestRenderReceipt_QRCodeFailureStillPrints(t *testing.T) {
	p := &capturePrinter{}
	renderer, err := newHTMLReceiptRenderer(p, stubQRCode{err: errors.New("boom")}, "", testLogger())
	require.NoError(t, err)

	_, err = renderer.RenderReceipt(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)

	assert.Contains(t, p.html, defaultStoreName)
	assert.NotContains(t, p.html, "data:image/png")
}

func TestRenderReceipt_PrinterFailure(t *testing.T) {
	renderer, err := newHTMLReceiptRenderer(&capturePrinter{err: errors.New("chrome gone")}, nil, "", testLogger())
	require.NoError(t, err)

	_, err = renderer.RenderReceipt(context.Background(), sampleOrder(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome gone")
}

func TestNewReceiptRenderer_Disabled(t *testing.T) {
	renderer, err := NewReceiptRenderer(Params{
		Lc:     fxtest.NewLifecycle(t),
		Config: &config.Config{},
		Logger: testLogger(),
	})
	require.NoError(t, err)

	_, err = renderer.RenderReceipt(context.Background(), sampleOrder(), nil)
	assert.ErrorIs(t, err, service.ErrReceiptUnavailable)
}
