// Package usecase provides testify mocks of the usecase interfaces for handler tests.
package usecase

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func page[T any](args mock.Arguments) (*usecase.Page[T], error) {
	p, _ := args.Get(0).(*usecase.Page[T])

	return p, args.Error(1)
}

// MockAuthUsecase is a mock of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a MockAuthUsecase that asserts its expectations on cleanup.
func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockAuthUsecase) auth(args mock.Arguments) (*usecase.AuthOutput, error) {
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (m *MockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return m.auth(m.Called(ctx, input))
}

func (m *MockAuthUsecase) Login(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	return m.auth(m.Called(ctx, idToken))
}

func (m *MockAuthUsecase) SocialLogin(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.AuthOutput, error) {
	return m.auth(m.Called(ctx, input))
}

func (m *MockAuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthUsecase) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	return m.Called(ctx, userID, input).Error(0)
}

func (m *MockAuthUsecase) SetPassword(ctx context.Context, userID uuid.UUID, password string) error {
	return m.Called(ctx, userID, password).Error(0)
}

func (m *MockAuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

// MockProductUsecase is a mock of usecase.ProductUsecase.
type MockProductUsecase struct {
	mock.Mock
}

// NewMockProductUsecase creates a MockProductUsecase that asserts its expectations on cleanup.
func NewMockProductUsecase(t *testing.T) *MockProductUsecase {
	m := &MockProductUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockProductUsecase) ListProducts(ctx context.Context, filter entity.ProductFilter) (*usecase.Page[*entity.Product], error) {
	return page[*entity.Product](m.Called(ctx, filter))
}

func (m *MockProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) CreateProduct(ctx context.Context, createdBy uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	args := m.Called(ctx, createdBy, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	args := m.Called(ctx, id, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCategoryUsecase is a mock of usecase.CategoryUsecase.
type MockCategoryUsecase struct {
	mock.Mock
}

// NewMockCategoryUsecase creates a MockCategoryUsecase that asserts its expectations on cleanup.
func NewMockCategoryUsecase(t *testing.T) *MockCategoryUsecase {
	m := &MockCategoryUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockCategoryUsecase) ListCategories(ctx context.Context, req entity.PageRequest) (*usecase.Page[*entity.Category], error) {
	return page[*entity.Category](m.Called(ctx, req))
}

func (m *MockCategoryUsecase) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *MockCategoryUsecase) CreateCategory(ctx context.Context, input *usecase.ReferenceInput) (*entity.Category, error) {
	args := m.Called(ctx, input)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *MockCategoryUsecase) UpdateCategory(ctx context.Context, id uuid.UUID, input *usecase.UpdateReferenceInput) (*entity.Category, error) {
	args := m.Called(ctx, id, input)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *MockCategoryUsecase) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTeamUsecase is a mock of usecase.TeamUsecase.
type MockTeamUsecase struct {
	mock.Mock
}

// NewMockTeamUsecase creates a MockTeamUsecase that asserts its expectations on cleanup.
func NewMockTeamUsecase(t *testing.T) *MockTeamUsecase {
	m := &MockTeamUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockTeamUsecase) ListTeams(ctx context.Context, req entity.PageRequest) (*usecase.Page[*entity.Team], error) {
	return page[*entity.Team](m.Called(ctx, req))
}

func (m *MockTeamUsecase) GetTeam(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*entity.Team)

	return team, args.Error(1)
}

func (m *MockTeamUsecase) CreateTeam(ctx context.Context, input *usecase.ReferenceInput) (*entity.Team, error) {
	args := m.Called(ctx, input)
	team, _ := args.Get(0).(*entity.Team)

	return team, args.Error(1)
}

func (m *MockTeamUsecase) UpdateTeam(ctx context.Context, id uuid.UUID, input *usecase.UpdateReferenceInput) (*entity.Team, error) {
	args := m.Called(ctx, id, input)
	team, _ := args.Get(0).(*entity.Team)

	return team, args.Error(1)
}

func (m *MockTeamUsecase) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderUsecase is a mock of usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

// NewMockOrderUsecase creates a MockOrderUsecase that asserts its expectations on cleanup.
func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderUsecase) order(args mock.Arguments) (*entity.Order, error) {
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderUsecase) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	return m.order(m.Called(ctx, userID, input))
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	return m.order(m.Called(ctx, actor, id))
}

func (m *MockOrderUsecase) ListMyOrders(ctx context.Context, userID uuid.UUID, req entity.PageRequest) (*usecase.Page[*entity.Order], error) {
	return page[*entity.Order](m.Called(ctx, userID, req))
}

func (m *MockOrderUsecase) ListOrders(ctx context.Context, filter entity.OrderFilter) (*usecase.Page[*entity.Order], error) {
	return page[*entity.Order](m.Called(ctx, filter))
}

func (m *MockOrderUsecase) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	return m.order(m.Called(ctx, id, status))
}

func (m *MockOrderUsecase) CancelOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	return m.order(m.Called(ctx, actor, id))
}

func (m *MockOrderUsecase) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockReviewUsecase is a mock of usecase.ReviewUsecase.
type MockReviewUsecase struct {
	mock.Mock
}

// NewMockReviewUsecase creates a MockReviewUsecase that asserts its expectations on cleanup.
func NewMockReviewUsecase(t *testing.T) *MockReviewUsecase {
	m := &MockReviewUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockReviewUsecase) review(args mock.Arguments) (*entity.Review, error) {
	review, _ := args.Get(0).(*entity.Review)

	return review, args.Error(1)
}

func (m *MockReviewUsecase) CreateReview(ctx context.Context, userID uuid.UUID, input *usecase.CreateReviewInput) (*entity.Review, error) {
	return m.review(m.Called(ctx, userID, input))
}

func (m *MockReviewUsecase) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return m.review(m.Called(ctx, id))
}

func (m *MockReviewUsecase) ListReviews(ctx context.Context, filter entity.ReviewFilter) (*usecase.Page[*entity.Review], error) {
	return page[*entity.Review](m.Called(ctx, filter))
}

func (m *MockReviewUsecase) UpdateReview(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	return m.review(m.Called(ctx, actor, id, input))
}

func (m *MockReviewUsecase) DeleteReview(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockUserUsecase is a mock of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

// NewMockUserUsecase creates a MockUserUsecase that asserts its expectations on cleanup.
func NewMockUserUsecase(t *testing.T) *MockUserUsecase {
	m := &MockUserUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockUserUsecase) user(args mock.Arguments) (*entity.User, error) {
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	return m.user(m.Called(ctx, userID, input))
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, filter entity.UserFilter) (*usecase.Page[*entity.User], error) {
	return page[*entity.User](m.Called(ctx, filter))
}

func (m *MockUserUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.AdminUpdateUserInput) (*entity.User, error) {
	return m.user(m.Called(ctx, actor, id, input))
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockDashboardUsecase is a mock of usecase.DashboardUsecase.
type MockDashboardUsecase struct {
	mock.Mock
}

// NewMockDashboardUsecase creates a MockDashboardUsecase that asserts its expectations on cleanup.
func NewMockDashboardUsecase(t *testing.T) *MockDashboardUsecase {
	m := &MockDashboardUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockDashboardUsecase) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*entity.DashboardSummary)

	return summary, args.Error(1)
}

func (m *MockDashboardUsecase) Sales(ctx context.Context, grouping usecase.SalesGrouping, window entity.DateRange) ([]entity.SalesBucket, error) {
	args := m.Called(ctx, grouping, window)
	buckets, _ := args.Get(0).([]entity.SalesBucket)

	return buckets, args.Error(1)
}

func (m *MockDashboardUsecase) TopProducts(ctx context.Context, window entity.DateRange, limit int) ([]entity.TopProduct, error) {
	args := m.Called(ctx, window, limit)
	products, _ := args.Get(0).([]entity.TopProduct)

	return products, args.Error(1)
}

func (m *MockDashboardUsecase) CategoryDistribution(ctx context.Context) ([]entity.CategoryCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]entity.CategoryCount)

	return counts, args.Error(1)
}

func (m *MockDashboardUsecase) RevenueByCategory(ctx context.Context, window entity.DateRange) ([]entity.CategoryRevenue, error) {
	args := m.Called(ctx, window)
	revenue, _ := args.Get(0).([]entity.CategoryRevenue)

	return revenue, args.Error(1)
}

func (m *MockDashboardUsecase) OrderStatusDistribution(ctx context.Context) ([]entity.StatusCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]entity.StatusCount)

	return counts, args.Error(1)
}

var (
	_ usecase.AuthUsecase      = (*MockAuthUsecase)(nil)
	_ usecase.ProductUsecase   = (*MockProductUsecase)(nil)
	_ usecase.CategoryUsecase  = (*MockCategoryUsecase)(nil)
	_ usecase.TeamUsecase      = (*MockTeamUsecase)(nil)
	_ usecase.OrderUsecase     = (*MockOrderUsecase)(nil)
	_ usecase.ReviewUsecase    = (*MockReviewUsecase)(nil)
	_ usecase.UserUsecase      = (*MockUserUsecase)(nil)
	_ usecase.DashboardUsecase = (*MockDashboardUsecase)(nil)
)
