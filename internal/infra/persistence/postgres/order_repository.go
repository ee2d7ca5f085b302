package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create persists the order and its line items in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = newID()
	}
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order with its line items in checkout order.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.find(repo.db.WithContext(ctx), id)
}

// FindByIDForUpdate is FindByID holding a row lock on the order until the
// surrounding transaction ends.
func (repo *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.find(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (repo *orderRepository) find(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := db.
		Preload("Items", preloadItems).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// List returns one page of orders matching the filter, newest first.
func (repo *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := query.
		Preload("Items", preloadItems).
		Scopes(paginate(filter.Page)).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// UpdateStatus writes the status together with its paid, delivered and
// cancelled timestamps, provided the stored status is still from.
func (repo *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order, from entity.OrderStatus) error {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", order.ID, string(from)).
		Updates(map[string]any{
			"status":       string(order.Status),
			"paid_at":      order.PaidAt,
			"delivered_at": order.DeliveredAt,
			"cancelled_at": order.CancelledAt,
			"updated_at":   now,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrChanged(ctx, order.ID)
	}

	order.UpdatedAt = now

	return nil
}

// Delete removes an order together with its line items, provided the stored
// status is still status.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(status)).
		Delete(&model.OrderModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrChanged(ctx, id)
	}

	return nil
}

func (repo *orderRepository) missingOrChanged(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check order")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrOrderStatusChanged
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return &entity.Order{
		ID:     data.ID,
		UserID: data.UserID,
		Items:  items,
		ShippingInfo: entity.ShippingInfo{
			Address:    data.ShippingAddress,
			City:       data.ShippingCity,
			State:      data.ShippingState,
			Country:    data.ShippingCountry,
			PostalCode: data.ShippingPostalCode,
			Phone:      data.ShippingPhone,
		},
		PriceBreakdown: entity.PriceBreakdown{
			ItemsPrice:    data.ItemsPrice,
			TaxPrice:      data.TaxPrice,
			ShippingPrice: data.ShippingPrice,
			TotalPrice:    data.TotalPrice,
		},
		PaymentInfo: entity.PaymentInfo{
			ID:     data.PaymentID,
			Status: data.PaymentStatus,
		},
		PaidAt:      data.PaidAt,
		Status:      entity.OrderStatus(data.Status),
		DeliveredAt: data.DeliveredAt,
		CancelledAt: data.CancelledAt,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(data.Items))
	for i, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:        newID(),
			OrderID:   data.ID,
			Position:  i,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return &model.OrderModel{
		ID:                 data.ID,
		UserID:             data.UserID,
		ShippingAddress:    data.ShippingInfo.Address,
		ShippingCity:       data.ShippingInfo.City,
		ShippingState:      data.ShippingInfo.State,
		ShippingCountry:    data.ShippingInfo.Country,
		ShippingPostalCode: data.ShippingInfo.PostalCode,
		ShippingPhone:      data.ShippingInfo.Phone,
		ItemsPrice:         data.ItemsPrice,
		TaxPrice:           data.TaxPrice,
		ShippingPrice:      data.ShippingPrice,
		TotalPrice:         data.TotalPrice,
		PaymentID:          data.PaymentInfo.ID,
		PaymentStatus:      data.PaymentInfo.Status,
		PaidAt:             data.PaidAt,
		Status:             string(data.Status),
		DeliveredAt:        data.DeliveredAt,
		CancelledAt:        data.CancelledAt,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
		Items:              items,
	}
}
