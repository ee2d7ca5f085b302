package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/metrics"
	"storefront/internal/infra/moderation"
	"storefront/internal/infra/persistence/postgres"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/testutil"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// storeFixtures wires the services to real repositories over an in-memory
// SQLite database and mocks every outbound port.
type storeFixtures struct {
	cfg        *config.Config
	txManager  repository.TransactionManager
	users      repository.UserRepository
	products   repository.ProductRepository
	categories repository.CategoryRepository
	teams      repository.TeamRepository
	orders     repository.OrderRepository
	reviews    repository.ReviewRepository
	mailer     *mockService.MockMailer
	publisher  *mockService.MockEventPublisher
	receipts   *mockService.MockReceiptRenderer
	images     *mockService.MockImageStore
	logger     *slog.Logger
}

func newStoreFixtures(t *testing.T) storeFixtures {
	t.Helper()

	db := testutil.NewSQLiteDB(t)

	return storeFixtures{
		cfg: &config.Config{
			Pricing: config.PricingConfig{TaxRate: 0.1, ShippingFee: 5, FreeShippingThreshold: 100},
			Auth:    &config.AuthConfig{BcryptCost: 4, MinPasswordLength: 8},
		},
		txManager:  postgres.NewTransactionManager(db),
		users:      postgres.NewUserRepository(db),
		products:   postgres.NewProductRepository(db),
		categories: postgres.NewCategoryRepository(db),
		teams:      postgres.NewTeamRepository(db),
		orders:     postgres.NewOrderRepository(db),
		reviews:    postgres.NewReviewRepository(db),
		mailer:     mockService.NewMockMailer(t),
		publisher:  mockService.NewMockEventPublisher(t),
		receipts:   mockService.NewMockReceiptRenderer(t),
		images:     mockService.NewMockImageStore(t),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// quietSideEffects accepts any email, event and receipt request.
func (f storeFixtures) quietSideEffects() {
	f.mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.receipts.On("RenderReceipt", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrReceiptUnavailable).Maybe()
}

func (f storeFixtures) orderService() *orderService {
	srv, _ := NewOrderService(OrderServiceParams{
		TxManager: f.txManager,
		OrderRepo: f.orders,
		UserRepo:  f.users,
		Mailer:    f.mailer,
		Receipts:  f.receipts,
		Publisher: f.publisher,
		Metrics:   metrics.NoopBusinessMetrics{},
		Config:    f.cfg,
		Logger:    f.logger,
	}).(*orderService)

	return srv
}

func (f storeFixtures) reviewService() usecase.ReviewUsecase {
	return NewReviewService(ReviewServiceParams{
		TxManager:     f.txManager,
		ReviewRepo:    f.reviews,
		ContentFilter: moderation.NewProfanityFilter(nil),
		ImageStore:    f.images,
		Metrics:       metrics.NoopBusinessMetrics{},
		Config:        f.cfg,
		Logger:        f.logger,
	})
}

func (f storeFixtures) productService() usecase.ProductUsecase {
	return NewProductService(ProductServiceParams{
		TxManager:    f.txManager,
		ProductRepo:  f.products,
		CategoryRepo: f.categories,
		TeamRepo:     f.teams,
		ImageStore:   f.images,
		Metrics:      metrics.NoopBusinessMetrics{},
		Config:       f.cfg,
		Logger:       f.logger,
	})
}

func (f storeFixtures) categoryService() usecase.CategoryUsecase {
	return NewCategoryService(CategoryServiceParams{
		TxManager:    f.txManager,
		CategoryRepo: f.categories,
		ImageStore:   f.images,
		Metrics:      metrics.NoopBusinessMetrics{},
		Config:       f.cfg,
		Logger:       f.logger,
	})
}

func (f storeFixtures) teamService() usecase.TeamUsecase {
	return NewTeamService(TeamServiceParams{
		TxManager:  f.txManager,
		TeamRepo:   f.teams,
		ImageStore: f.images,
		Metrics:    metrics.NoopBusinessMetrics{},
		Config:     f.cfg,
		Logger:     f.logger,
	})
}

func (f storeFixtures) seedUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        email,
		Name:         "Fan " + email,
		Role:         role,
		Status:       entity.UserStatusActive,
		AuthProvider: entity.AuthProviderEmail,
	}
	require.NoError(t, f.users.Create(context.Background(), user))

	return user
}

func (f storeFixtures) seedProduct(t *testing.T, name, price string, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		CreatedBy: uuid.New(),
		Images:    []entity.Image{{PublicID: "products/" + name, URL: "https://cdn.example.com/" + name + ".png"}},
	}
	require.NoError(t, f.products.Create(context.Background(), product))

	return product
}

func (f storeFixtures) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()

	product, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)

	return product.Stock
}

func shippingTo(city string) entity.ShippingInfo {
	return entity.ShippingInfo{
		Address:    "1 Stadium Way",
		City:       city,
		State:      "CA",
		Country:    "US",
		PostalCode: "90012",
		Phone:      "555-0100",
	}
}

func customer(user *entity.User) usecase.Actor {
	return usecase.Actor{UserID: user.ID, Roles: user.Roles()}
}
