// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockMailer is a mock of service.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a MockMailer that asserts its expectations on cleanup.
func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	register(t, &m.Mock)

	return m
}

func (m *MockMailer) Send(ctx context.Context, msg *service.EmailMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

// MockIdentityProvider is a mock of service.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

// NewMockIdentityProvider creates a MockIdentityProvider that asserts its expectations on cleanup.
func NewMockIdentityProvider(t *testing.T) *MockIdentityProvider {
	m := &MockIdentityProvider{}
	register(t, &m.Mock)

	return m
}

func (m *MockIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityClaims, error) {
	args := m.Called(ctx, idToken)
	claims, _ := args.Get(0).(*entity.IdentityClaims)

	return claims, args.Error(1)
}

func (m *MockIdentityProvider) UpsertPassword(ctx context.Context, email, displayName, password string) error {
	args := m.Called(ctx, email, displayName, password)

	return args.Error(0)
}

func (m *MockIdentityProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)

	return args.String(0), args.Error(1)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a MockTokenService that asserts its expectations on cleanup.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID, roles []string) (string, time.Time, error) {
	args := m.Called(userID, roles)
	expiresAt, _ := args.Get(1).(time.Time)

	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

// MockImageStore is a mock of service.ImageStore.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a MockImageStore that asserts its expectations on cleanup.
func NewMockImageStore(t *testing.T) *MockImageStore {
	m := &MockImageStore{}
	register(t, &m.Mock)

	return m
}

func (m *MockImageStore) Upload(ctx context.Context, folder string, upload entity.ImageUpload) (entity.Image, error) {
	args := m.Called(ctx, folder, upload)
	img, _ := args.Get(0).(entity.Image)

	return img, args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)

	return args.Error(0)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a MockEventPublisher that asserts its expectations on cleanup.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockReceiptRenderer is a mock of service.ReceiptRenderer.
type MockReceiptRenderer struct {
	mock.Mock
}

// NewMockReceiptRenderer creates a MockReceiptRenderer that asserts its expectations on cleanup.
func NewMockReceiptRenderer(t *testing.T) *MockReceiptRenderer {
	m := &MockReceiptRenderer{}
	register(t, &m.Mock)

	return m
}

func (m *MockReceiptRenderer) RenderReceipt(ctx context.Context, order *entity.Order, customer *entity.User) ([]byte, error) {
	args := m.Called(ctx, order, customer)
	pdf, _ := args.Get(0).([]byte)

	return pdf, args.Error(1)
}

var (
	_ service.Mailer           = (*MockMailer)(nil)
	_ service.IdentityProvider = (*MockIdentityProvider)(nil)
	_ service.TokenService     = (*MockTokenService)(nil)
	_ service.ImageStore       = (*MockImageStore)(nil)
	_ service.EventPublisher   = (*MockEventPublisher)(nil)
	_ service.ReceiptRenderer  = (*MockReceiptRenderer)(nil)
)
