package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate is FindByID that also locks the product row for the
	// rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns one page of products matching the filter and the total match count.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int64, error)

	Create(ctx context.Context, product *entity.Product) error

	// Update writes the admin-editable fields, stock included. Rating is never written here.
	Update(ctx context.Context, product *entity.Product) error

	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically takes qty units, failing with ErrInsufficientStock
	// when fewer than qty remain.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// IncrementStock returns qty units. A missing product is not an error.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// UpdateRating stores the derived review aggregate of a product.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, numOfReviews int) error

	// ClearCategory detaches every product from the category.
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error

	// ClearTeam detaches every product from the team.
	ClearTeam(ctx context.Context, teamID uuid.UUID) error
}
