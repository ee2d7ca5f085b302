package impl

import (
	"context"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, srv usecase.OrderUsecase, user *entity.User, product *entity.Product, qty int) *entity.Order {
	t.Helper()

	order, err := srv.CreateOrder(context.Background(), user.ID, &usecase.CreateOrderInput{
		Items:        []usecase.OrderLineInput{{ProductID: product.ID, Quantity: qty}},
		ShippingInfo: shippingTo("Los Angeles"),
		PaymentInfo:  entity.PaymentInfo{ID: "pi_123", Status: "succeeded"},
	})
	require.NoError(t, err)

	return order
}

func TestOrderService_CreateOrder_SnapshotsPricesAndTakesStock(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	jersey := f.seedProduct(t, "Home Jersey", "30.00", 10)

	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == constants.OrderEventCreated && event.UserID == buyer.ID.String() && event.TotalPrice == "71.00"
	})).Return(nil).Once()
	f.receipts.On("RenderReceipt", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrReceiptUnavailable).Once()
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg *service.EmailMessage) bool {
		return msg.To == "buyer@example.com" &&
			strings.HasPrefix(msg.Subject, "Order confirmation") &&
			len(msg.Attachments) == 0
	})).Return(nil).Once()

	order, err := srv.CreateOrder(ctx, buyer.ID, &usecase.CreateOrderInput{
		Items:        []usecase.OrderLineInput{{ProductID: jersey.ID, Quantity: 2}},
		ShippingInfo: shippingTo("Los Angeles"),
		PaymentInfo:  entity.PaymentInfo{ID: "pi_123", Status: "succeeded"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Home Jersey", order.Items[0].Name)
	assert.Equal(t, "https://cdn.example.com/Home Jersey.png", order.Items[0].Image)
	assert.True(t, decimal.RequireFromString("60").Equal(order.ItemsPrice))
	assert.True(t, decimal.RequireFromString("6").Equal(order.TaxPrice))
	assert.True(t, decimal.RequireFromString("5").Equal(order.ShippingPrice))
	assert.True(t, decimal.RequireFromString("71").Equal(order.TotalPrice))
	assert.NotNil(t, order.PaidAt)
	assert.Equal(t, 8, f.stockOf(t, jersey.ID))

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(stored.TotalPrice))
}

func TestOrderService_CreateOrder_InsufficientStockLeavesNothingBehind(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	scarf := f.seedProduct(t, "Scarf", "15.00", 3)
	beanie := f.seedProduct(t, "Beanie", "20.00", 10)

	_, err := srv.CreateOrder(ctx, buyer.ID, &usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: beanie.ID, Quantity: 1},
			{ProductID: scarf.ID, Quantity: 5},
		},
		ShippingInfo: shippingTo("Madrid"),
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	var appErr *domainerrors.BaseError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "Insufficient stock for Scarf: only 3 available", appErr.Message())

	assert.Equal(t, 3, f.stockOf(t, scarf.ID))
	assert.Equal(t, 10, f.stockOf(t, beanie.ID))

	_, total, err := f.orders.List(ctx, entity.OrderFilter{Page: entity.PageRequest{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.orderService()
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)

	_, err := srv.CreateOrder(ctx, buyer.ID, &usecase.CreateOrderInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.CreateOrder(ctx, buyer.ID, &usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.CreateOrder(ctx, buyer.ID, &usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestOrderService_CancelOrder_RestoresStock(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	jersey := f.seedProduct(t, "Away Jersey", "80.00", 10)

	order := placeOrder(t, srv, buyer, jersey, 2)
	assert.Equal(t, 8, f.stockOf(t, jersey.ID))

	cancelled, err := srv.CancelOrder(ctx, customer(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 10, f.stockOf(t, jersey.ID))

	_, err = srv.CancelOrder(ctx, customer(buyer), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyCancelled)
	assert.Equal(t, 10, f.stockOf(t, jersey.ID))
}

func TestOrderService_CancelOrder_Access(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	stranger := f.seedUser(t, "stranger@example.com", entity.RoleUser)
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	jersey := f.seedProduct(t, "Away Jersey", "80.00", 10)
	order := placeOrder(t, srv, buyer, jersey, 1)

	_, err := srv.CancelOrder(ctx, customer(stranger), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Equal(t, 9, f.stockOf(t, jersey.ID))

	_, err = srv.CancelOrder(ctx, customer(admin), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stockOf(t, jersey.ID))

	_, err = srv.CancelOrder(ctx, customer(admin), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_UpdateOrderStatus_Lifecycle(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	frozen := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return frozen }

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	ball := f.seedProduct(t, "Match Ball", "120.00", 5)

	order, err := srv.CreateOrder(ctx, buyer.ID, &usecase.CreateOrderInput{
		Items:        []usecase.OrderLineInput{{ProductID: ball.ID, Quantity: 1}},
		ShippingInfo: shippingTo("Lisbon"),
		PaymentInfo:  entity.PaymentInfo{ID: "pi_cod", Status: "pending"},
	})
	require.NoError(t, err)
	assert.Nil(t, order.PaidAt)
	assert.True(t, order.ShippingPrice.IsZero(), "orders above the threshold ship free")

	_, err = srv.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusDelivered)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)

	_, err = srv.UpdateOrderStatus(ctx, order.ID, "Lost")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	shipped, err := srv.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, shipped.Status)

	delivered, err := srv.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredAt)
	require.NotNil(t, delivered.PaidAt)
	assert.True(t, frozen.Equal(*delivered.DeliveredAt))
	assert.True(t, frozen.Equal(*delivered.PaidAt))

	_, err = srv.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domainerrors.ErrOrderFinalized)

	_, err = srv.CancelOrder(ctx, customer(buyer), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderFinalized)
	assert.Equal(t, 4, f.stockOf(t, ball.ID), "delivered orders keep their stock")
}

func TestOrderService_StatusChangeNotifiesCustomer(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	ball := f.seedProduct(t, "Match Ball", "20.00", 5)

	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == constants.OrderEventCreated
	})).Return(nil).Once()
	f.receipts.On("RenderReceipt", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrReceiptUnavailable).Once()
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg *service.EmailMessage) bool {
		return strings.HasPrefix(msg.Subject, "Order confirmation")
	})).Return(nil).Once()
	order := placeOrder(t, srv, buyer, ball, 1)

	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == constants.OrderEventStatusChanged && event.Status == string(entity.OrderStatusShipped)
	})).Return(assert.AnError).Once()
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg *service.EmailMessage) bool {
		return msg.To == buyer.Email && strings.HasSuffix(msg.Subject, "is Shipped") && strings.Contains(msg.HTMLBody, "Shipped")
	})).Return(nil).Once()

	_, err := srv.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusShipped)
	require.NoError(t, err, "side effect failures never fail the request")
}

func TestOrderService_ReceiptAttachedAndRemoved(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.orderService()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	ball := f.seedProduct(t, "Match Ball", "20.00", 5)

	var attachedPath string
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()
	f.receipts.On("RenderReceipt", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.7"), nil).Once()
	f.mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		msg := args.Get(1).(*service.EmailMessage)
		require.Len(t, msg.Attachments, 1)
		assert.True(t, strings.HasPrefix(msg.Attachments[0].Filename, "receipt-"))
		attachedPath = msg.Attachments[0].Path

		content, err := os.ReadFile(attachedPath)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7", string(content))
	}).Return(nil).Once()

	placeOrder(t, srv, buyer, ball, 1)

	require.NotEmpty(t, attachedPath)
	_, err := os.Stat(attachedPath)
	assert.True(t, os.IsNotExist(err), "receipt file must be removed after sending")
}

func TestOrderService_GetOrderAndListing(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	other := f.seedUser(t, "other@example.com", entity.RoleUser)
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	ball := f.seedProduct(t, "Match Ball", "20.00", 50)

	first := placeOrder(t, srv, buyer, ball, 1)
	placeOrder(t, srv, buyer, ball, 2)
	placeOrder(t, srv, other, ball, 3)

	_, err := srv.GetOrder(ctx, customer(other), first.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	found, err := srv.GetOrder(ctx, customer(admin), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	mine, err := srv.ListMyOrders(ctx, buyer.ID, entity.PageRequest{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)
	assert.EqualValues(t, 2, mine.Pagination.Total)
	assert.Equal(t, 2, mine.Pagination.TotalPages)

	all, err := srv.ListOrders(ctx, entity.OrderFilter{Status: entity.OrderStatusProcessing})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Pagination.Total)
	assert.Equal(t, defaultPageLimit, all.Pagination.Limit)

	_, err = srv.ListOrders(ctx, entity.OrderFilter{Status: "Lost"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	ball := f.seedProduct(t, "Match Ball", "20.00", 10)

	open := placeOrder(t, srv, buyer, ball, 4)
	cancelled := placeOrder(t, srv, buyer, ball, 2)
	_, err := srv.CancelOrder(ctx, customer(buyer), cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, f.stockOf(t, ball.ID))

	require.NoError(t, srv.DeleteOrder(ctx, open.ID))
	assert.Equal(t, 10, f.stockOf(t, ball.ID))

	require.NoError(t, srv.DeleteOrder(ctx, cancelled.ID))
	assert.Equal(t, 10, f.stockOf(t, ball.ID), "cancelled orders already returned their stock")

	assert.ErrorIs(t, srv.DeleteOrder(ctx, open.ID), domainerrors.ErrOrderNotFound)
}

// snapshotTxManager answers locked order reads with a copy taken earlier, the
// view a concurrent transaction holds when another one commits first.
type snapshotTxManager struct {
	repository.TransactionManager
	snapshot *entity.Order
}

func (m snapshotTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.TransactionManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return fn(snapshotFactory{RepositoryFactory: factory, snapshot: m.snapshot})
	})
}

type snapshotFactory struct {
	repository.RepositoryFactory
	snapshot *entity.Order
}

func (f snapshotFactory) NewOrderRepository() repository.OrderRepository {
	return snapshotOrders{OrderRepository: f.RepositoryFactory.NewOrderRepository(), snapshot: f.snapshot}
}

type snapshotOrders struct {
	repository.OrderRepository
	snapshot *entity.Order
}

func (r snapshotOrders) FindByIDForUpdate(_ context.Context, _ uuid.UUID) (*entity.Order, error) {
	order := *r.snapshot
	order.Items = slices.Clone(r.snapshot.Items)

	return &order, nil
}

func (f storeFixtures) staleOrderService(t *testing.T, id uuid.UUID) *orderService {
	t.Helper()

	snapshot, err := f.orders.FindByID(context.Background(), id)
	require.NoError(t, err)

	srv := f.orderService()
	srv.txManager = snapshotTxManager{TransactionManager: f.txManager, snapshot: snapshot}

	return srv
}

func TestOrderService_CancelOrder_StaleReadRestoresStockOnce(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	scarf := f.seedProduct(t, "Scarf", "15.00", 10)

	order := placeOrder(t, srv, buyer, scarf, 2)
	assert.Equal(t, 8, f.stockOf(t, scarf.ID))
	stale := f.staleOrderService(t, order.ID)

	_, err := srv.CancelOrder(ctx, customer(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stockOf(t, scarf.ID))

	_, err = stale.CancelOrder(ctx, customer(admin), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderFinalized)
	assert.Equal(t, 10, f.stockOf(t, scarf.ID), "stock comes back exactly once")

	_, err = stale.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusShipped)
	assert.ErrorIs(t, err, domainerrors.ErrOrderFinalized)

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, stored.Status)
}

func TestOrderService_DeleteOrder_StaleReadAfterCancel(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.orderService()
	ctx := context.Background()

	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	scarf := f.seedProduct(t, "Scarf", "15.00", 10)

	order := placeOrder(t, srv, buyer, scarf, 3)
	stale := f.staleOrderService(t, order.ID)

	_, err := srv.CancelOrder(ctx, customer(buyer), order.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, stale.DeleteOrder(ctx, order.ID), domainerrors.ErrOrderFinalized)
	assert.Equal(t, 10, f.stockOf(t, scarf.ID))

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err, "a rejected delete leaves the order and its items in place")
	assert.Len(t, stored.Items, 1)

	require.NoError(t, srv.DeleteOrder(ctx, order.ID))
	assert.Equal(t, 10, f.stockOf(t, scarf.ID))
}
