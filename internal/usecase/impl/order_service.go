package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const paymentStatusSucceeded = "succeeded"

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	pricing   pricingPolicy
	notifier  *orderNotifier
	metrics   service.BusinessMetrics
	pager     pager
	now       func() time.Time
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
	Mailer    service.Mailer
	Receipts  service.ReceiptRenderer
	Publisher service.EventPublisher
	Metrics   service.BusinessMetrics
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		pricing:   newPricingPolicy(params.Config.Pricing),
		notifier: &orderNotifier{
			userRepo:  params.UserRepo,
			mailer:    params.Mailer,
			receipts:  params.Receipts,
			publisher: params.Publisher,
			metrics:   params.Metrics,
			logger:    params.Logger,
		},
		metrics: params.Metrics,
		pager:   newPager(params.Config),
		now:     time.Now,
		logger:  params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder validates every line against current stock, snapshots the products
// into line items, stores the order and takes the stock. All of it commits or
// none of it does; a decrement that finds too little stock aborts the order.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("order has no items").WrapMessage("empty order")
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1").WrapMessage("invalid order line")
		}
	}

	now := srv.now()
	order := &entity.Order{
		UserID:       userID,
		ShippingInfo: input.ShippingInfo,
		PaymentInfo:  input.PaymentInfo,
		Status:       entity.OrderStatusProcessing,
	}
	if input.PaymentInfo.Status == paymentStatusSucceeded {
		order.PaidAt = &now
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		items := make([]entity.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				return translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
			}
			if !product.InStock(line.Quantity) {
				return insufficientStock(product.Name, product.Stock)
			}

			items = append(items, entity.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  line.Quantity,
				Image:     product.PrimaryImageURL(),
			})
		}

		order.Items = items
		order.PriceBreakdown = srv.pricing.price(items)

		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		for _, item := range order.Items {
			err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return srv.raceLost(ctx, productRepo, item)
			}
			if err != nil {
				return translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInsufficientStock) {
			srv.metrics.StockRejected()
		}

		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.metrics.OrderPlaced(order.TotalPrice)
	srv.log(ctx).Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("total", order.TotalPrice.StringFixed(2)),
	)

	srv.notifier.orderPlaced(ctx, order)

	return order, nil
}

// raceLost builds the insufficient stock error for a decrement that lost to a
// concurrent order, reporting the stock left now.
func (srv *orderService) raceLost(ctx context.Context, productRepo repository.ProductRepository, item entity.OrderItem) error {
	available := 0
	if product, err := productRepo.FindByID(ctx, item.ProductID); err == nil {
		available = product.Stock
	}

	return insufficientStock(item.Name, available)
}

func (srv *orderService) GetOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound)
	}
	if !actor.CanAccess(order) {
		return nil, domainerrors.ErrForbidden.WrapMessage("order belongs to another user")
	}

	return order, nil
}

func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page entity.PageRequest) (*usecase.Page[*entity.Order], error) {
	return srv.ListOrders(ctx, entity.OrderFilter{UserID: &userID, Page: page})
}

func (srv *orderService) ListOrders(ctx context.Context, filter entity.OrderFilter) (*usecase.Page[*entity.Order], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status " + string(filter.Status)).WrapMessage("invalid filter")
	}
	filter.Page = srv.pager.normalize(filter.Page)

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return usecase.NewPage(orders, filter.Page, total), nil
}

// UpdateOrderStatus applies an admin status change.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status " + string(status)).WrapMessage("invalid status")
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByIDForUpdate(ctx, id)
		if err != nil {
			return translate(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound)
		}
		order = found

		if order.Status.IsTerminal() {
			return domainerrors.ErrOrderFinalized.WrapMessage("order status is " + string(order.Status))
		}
		if !order.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidStatusTransition.
				WithDetails(fmt.Sprintf("%s cannot move to %s", order.Status, status)).
				WrapMessage("invalid transition")
		}

		return srv.transition(ctx, repoFactory, order, status)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.afterTransition(ctx, order)

	return order, nil
}

// CancelOrder cancels an order on behalf of its owner or an admin.
func (srv *orderService) CancelOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByIDForUpdate(ctx, id)
		if err != nil {
			return translate(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound)
		}
		order = found

		if !actor.CanAccess(order) {
			return domainerrors.ErrForbidden.WrapMessage("order belongs to another user")
		}
		if order.Status == entity.OrderStatusCancelled {
			return domainerrors.ErrOrderAlreadyCancelled.WrapMessage("order already cancelled")
		}
		if order.Status.IsTerminal() {
			return domainerrors.ErrOrderFinalized.WrapMessage("order status is " + string(order.Status))
		}

		return srv.transition(ctx, repoFactory, order, entity.OrderStatusCancelled)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	srv.afterTransition(ctx, order)

	return order, nil
}

// DeleteOrder returns the stock of an order that still reserves it, then deletes the order.
func (srv *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		found, err := orderRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return translate(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound)
		}
		order = found

		if err := orderRepo.Delete(ctx, id, order.Status); err != nil {
			return translateOrderWrite(err)
		}
		if order.ReservesStock() {
			return restoreStock(ctx, repoFactory.NewProductRepository(), order)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted",
		slog.String("order_id", id.String()),
		slog.Bool("stock_restored", order.ReservesStock()),
	)
	srv.notifier.publish(ctx, constants.OrderEventDeleted, order)

	return nil
}

// transition moves a validated order to next. The write only applies while the
// stored status is still the one that was read, so entering Cancelled returns
// every line item's quantity to stock exactly once; this is the only path that does.
func (srv *orderService) transition(ctx context.Context, repoFactory repository.RepositoryFactory, order *entity.Order, next entity.OrderStatus) error {
	now := srv.now()
	from := order.Status

	switch next {
	case entity.OrderStatusCancelled:
		order.CancelledAt = &now
	case entity.OrderStatusDelivered:
		order.DeliveredAt = &now
		if order.PaidAt == nil {
			order.PaidAt = &now
		}
	}
	order.Status = next
	order.UpdatedAt = now

	if err := repoFactory.NewOrderRepository().UpdateStatus(ctx, order, from); err != nil {
		return translateOrderWrite(err)
	}
	if next == entity.OrderStatusCancelled {
		return restoreStock(ctx, repoFactory.NewProductRepository(), order)
	}

	return nil
}

func translateOrderWrite(err error) error {
	if errors.Is(err, repository.ErrOrderStatusChanged) {
		return domainerrors.ErrOrderFinalized.WrapMessage("order was changed by another request")
	}

	return translate(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound)
}

func (srv *orderService) afterTransition(ctx context.Context, order *entity.Order) {
	srv.metrics.OrderStatusChanged(string(order.Status))
	srv.log(ctx).Info("Order status changed",
		slog.String("order_id", order.ID.String()),
		slog.String("status", string(order.Status)),
	)

	eventType := constants.OrderEventStatusChanged
	if order.Status == entity.OrderStatusCancelled {
		eventType = constants.OrderEventCancelled
	}
	srv.notifier.statusChanged(ctx, eventType, order)
}

func restoreStock(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order) error {
	for _, item := range order.Items {
		if err := productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return errors.Wrapf(err, "failed to restore stock of product %s", item.ProductID)
		}
	}

	return nil
}

func insufficientStock(productName string, available int) error {
	return domainerrors.ErrInsufficientStock.
		WithMessage(fmt.Sprintf("Insufficient stock for %s: only %d available", productName, available)).
		WrapMessage("stock check failed")
}
