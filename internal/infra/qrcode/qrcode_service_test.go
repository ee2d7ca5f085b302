package qrcode

import (
	"encoding/json"
	"testing"

	"storefront/config"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(size int, level, baseURL string) *config.Config {
	return &config.Config{QRCode: &config.QRCodeConfig{Size: size, ErrorCorrectionLevel: level, BaseURL: baseURL}}
}

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected qrcode.RecoveryLevel
	}{
		{"Low error correction", "L", qrcode.Low},
		{"Medium error correction", "M", qrcode.Medium},
		{"High error correction", "Q", qrcode.High},
		{"Highest error correction", "H", qrcode.Highest},
		{"Default error correction", "invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, recoveryLevel(tt.level))
		})
	}
}

func TestQRCodeService_GenerateOrderQR(t *testing.T) {
	svc := NewQRCodeService(newConfig(256, "M", ""))

	qrBytes, err := svc.GenerateOrderQR(uuid.New())
	require.NoError(t, err)
	require.Greater(t, len(qrBytes), 4)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_DifferentSizes(t *testing.T) {
	orderID := uuid.New()
	small, err := NewQRCodeService(newConfig(128, "M", "")).GenerateOrderQR(orderID)
	require.NoError(t, err)
	large, err := NewQRCodeService(newConfig(512, "M", "")).GenerateOrderQR(orderID)
	require.NoError(t, err)

	assert.NotEmpty(t, small)
	assert.NotEmpty(t, large)
	assert.NotEqual(t, small, large)
}

func TestQRCodeService_OrderContent(t *testing.T) {
	orderID := uuid.New()

	withURL, ok := NewQRCodeService(newConfig(0, "", "https://shop.example.com/")).(*qrcodeService)
	require.True(t, ok)
	content, err := withURL.orderContent(orderID)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/orders/"+orderID.String(), content)
	assert.Equal(t, defaultSize, withURL.size)

	withoutURL, ok := NewQRCodeService(nil).(*qrcodeService)
	require.True(t, ok)
	content, err = withoutURL.orderContent(orderID)
	require.NoError(t, err)

	var data OrderQRData
	require.NoError(t, json.Unmarshal([]byte(content), &data))
	assert.Equal(t, orderID.String(), data.OrderID)
	assert.Equal(t, "order", data.Type)
}
