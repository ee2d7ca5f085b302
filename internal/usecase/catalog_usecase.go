package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *uuid.UUID
	TeamID      *uuid.UUID
	Images      []entity.ImageInput
}

// UpdateProductInput carries the fields to change. Nil fields are left untouched;
// a non-nil Images replaces the whole image list.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  *uuid.UUID
	TeamID      *uuid.UUID
	// ClearCategory and ClearTeam detach the product from its category or team.
	ClearCategory bool
	ClearTeam     bool
	Images        []entity.ImageInput
	ReplaceImages bool
}

// ReferenceInput defines the data of a category or team.
type ReferenceInput struct {
	Name        string
	Description string
	Images      []entity.ImageInput
}

// UpdateReferenceInput carries the category or team fields to change.
type UpdateReferenceInput struct {
	Name          *string
	Description   *string
	Images        []entity.ImageInput
	ReplaceImages bool
}

// ProductUsecase defines catalog product operations.
type ProductUsecase interface {
	ListProducts(ctx context.Context, filter entity.ProductFilter) (*Page[*entity.Product], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, createdBy uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	// DeleteProduct removes the product together with its reviews and hosted images.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CategoryUsecase defines category operations.
type CategoryUsecase interface {
	ListCategories(ctx context.Context, page entity.PageRequest) (*Page[*entity.Category], error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	CreateCategory(ctx context.Context, input *ReferenceInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input *UpdateReferenceInput) (*entity.Category, error)
	// DeleteCategory removes the category and detaches its products.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// TeamUsecase defines team operations.
type TeamUsecase interface {
	ListTeams(ctx context.Context, page entity.PageRequest) (*Page[*entity.Team], error)
	GetTeam(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	CreateTeam(ctx context.Context, input *ReferenceInput) (*entity.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, input *UpdateReferenceInput) (*entity.Team, error)
	// DeleteTeam removes the team and detaches its products.
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}
