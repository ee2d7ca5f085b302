package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateProduct(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.productService()
	ctx := context.Background()
	adminID := uuid.New()

	category, err := f.categoryService().CreateCategory(ctx, &usecase.ReferenceInput{Name: "Jerseys"})
	require.NoError(t, err)

	front := entity.ImageUpload{Filename: "front.png", ContentType: "image/png", Data: []byte("front")}
	back := entity.ImageUpload{Filename: "back.png", ContentType: "image/png", Data: []byte("back")}
	f.images.On("Upload", mock.Anything, folderProducts, front).
		Return(entity.Image{PublicID: "products/front", URL: "https://cdn.example.com/products/front.png"}, nil).Once()
	f.images.On("Upload", mock.Anything, folderProducts, back).
		Return(entity.Image{PublicID: "products/back", URL: "https://cdn.example.com/products/back.png"}, nil).Once()

	product, err := srv.CreateProduct(ctx, adminID, &usecase.CreateProductInput{
		Name:       "Home Jersey",
		Price:      decimal.RequireFromString("89.99"),
		Stock:      12,
		CategoryID: &category.ID,
		Images: []entity.ImageInput{
			entity.PendingUpload(front),
			entity.PendingUpload(back),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, adminID, product.CreatedBy)
	assert.Equal(t, []string{"products/front", "products/back"}, entity.PublicIDs(product.Images))
	assert.Zero(t, product.Rating)

	stored, err := srv.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("89.99")))
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, category.ID, *stored.CategoryID)
}

func TestProductService_CreateProduct_Rejections(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.productService()
	ctx := context.Background()

	_, err := srv.CreateProduct(ctx, uuid.New(), &usecase.CreateProductInput{Name: "Scarf", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.CreateProduct(ctx, uuid.New(), &usecase.CreateProductInput{Name: "Scarf", Stock: -2})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	missing := uuid.New()
	_, err = srv.CreateProduct(ctx, uuid.New(), &usecase.CreateProductInput{Name: "Scarf", TeamID: &missing})
	assert.ErrorIs(t, err, domainerrors.ErrTeamNotFound)

	huge := entity.ImageUpload{Filename: "huge.png", Data: []byte("x")}
	f.images.On("Upload", mock.Anything, folderProducts, huge).Return(entity.Image{}, service.ErrImageTooLarge).Once()
	_, err = srv.CreateProduct(ctx, uuid.New(), &usecase.CreateProductInput{
		Name:   "Scarf",
		Images: []entity.ImageInput{entity.PendingUpload(huge)},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.CreateProduct(ctx, uuid.New(), &usecase.CreateProductInput{
		Name:   "Scarf",
		Images: []entity.ImageInput{entity.HostedImage(entity.Image{PublicID: "products/Kit", URL: "https://cdn.example.com/Kit.png"})},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed, "a new product owns no hosted images yet")

	low, high := decimal.NewFromInt(50), decimal.NewFromInt(10)
	_, err = srv.ListProducts(ctx, entity.ProductFilter{MinPrice: &low, MaxPrice: &high})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_UpdateProduct_ReplacesImages(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.productService()
	ctx := context.Background()

	product := f.seedProduct(t, "Scarf", "15.00", 3)
	other := f.seedProduct(t, "Kit", "45.00", 5)
	fresh := entity.ImageUpload{Filename: "new.png", Data: []byte("new")}

	_, err := srv.UpdateProduct(ctx, product.ID, &usecase.UpdateProductInput{
		Images:        []entity.ImageInput{entity.HostedImage(other.Images[0])},
		ReplaceImages: true,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	f.images.On("Upload", mock.Anything, folderProducts, fresh).
		Return(entity.Image{PublicID: "products/new", URL: "https://cdn.example.com/products/new.png"}, nil).Once()
	f.images.On("Delete", mock.Anything, "products/Scarf").Return(nil).Once()

	price := decimal.RequireFromString("12.50")
	updated, err := srv.UpdateProduct(ctx, product.ID, &usecase.UpdateProductInput{
		Price:         &price,
		Images:        []entity.ImageInput{entity.PendingUpload(fresh)},
		ReplaceImages: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, []string{"products/new"}, entity.PublicIDs(updated.Images))

	kept, err := srv.UpdateProduct(ctx, product.ID, &usecase.UpdateProductInput{
		Images: []entity.ImageInput{
			entity.HostedImage(entity.Image{PublicID: "products/new", URL: "https://evil.example.com/x.png"}),
		},
		ReplaceImages: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/new.png", kept.Images[0].URL, "stored url wins over the client copy")
	assert.Equal(t, 3, updated.Stock)

	_, err = srv.UpdateProduct(ctx, uuid.New(), &usecase.UpdateProductInput{Price: &price})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_DeleteProduct_RemovesReviewsAndImages(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.productService()
	ctx := context.Background()

	alice := f.seedUser(t, "alice@example.com", entity.RoleUser)
	kit := f.seedProduct(t, "Kit", "45.00", 5)
	order := deliveredOrder(t, f.orderService(), alice, kit)

	photo := entity.ImageUpload{Filename: "kit.png", ContentType: "image/png", Data: []byte("kit")}
	f.images.On("Upload", mock.Anything, folderReviews, photo).
		Return(entity.Image{PublicID: "reviews/kit", URL: "https://cdn.example.com/reviews/kit.png"}, nil).Once()
	_, err := f.reviewService().CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID, OrderID: order.ID, Rating: 5, Images: []entity.ImageInput{entity.PendingUpload(photo)},
	})
	require.NoError(t, err)

	f.images.On("Delete", mock.Anything, "products/Kit").Return(nil).Once()
	f.images.On("Delete", mock.Anything, "reviews/kit").Return(assert.AnError).Once()

	require.NoError(t, srv.DeleteProduct(ctx, kit.ID), "image cleanup is best-effort")

	_, err = srv.GetProduct(ctx, kit.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	page, err := f.reviewService().ListReviews(ctx, entity.ReviewFilter{ProductID: &kit.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kit", stored.Items[0].Name, "order snapshots outlive the product")
}

func TestCategoryService_DeleteDetachesProducts(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.categoryService()
	ctx := context.Background()

	banner := entity.ImageUpload{Filename: "acc.png", ContentType: "image/png", Data: []byte("acc")}
	f.images.On("Upload", mock.Anything, folderCategories, banner).
		Return(entity.Image{PublicID: "categories/acc", URL: "https://cdn.example.com/acc.png"}, nil).Once()
	category, err := srv.CreateCategory(ctx, &usecase.ReferenceInput{
		Name:   "Accessories",
		Images: []entity.ImageInput{entity.PendingUpload(banner)},
	})
	require.NoError(t, err)

	_, err = srv.CreateCategory(ctx, &usecase.ReferenceInput{Name: "Accessories"})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNameTaken)

	scarf := f.seedProduct(t, "Scarf", "15.00", 3)
	_, err = f.productService().UpdateProduct(ctx, scarf.ID, &usecase.UpdateProductInput{CategoryID: &category.ID})
	require.NoError(t, err)

	f.images.On("Delete", mock.Anything, "categories/acc").Return(nil).Once()
	require.NoError(t, srv.DeleteCategory(ctx, category.ID))

	stored, err := f.products.FindByID(ctx, scarf.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CategoryID)

	_, err = srv.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
	assert.ErrorIs(t, srv.DeleteCategory(ctx, category.ID), domainerrors.ErrCategoryNotFound)
}

func TestTeamService_CRUD(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.teamService()
	ctx := context.Background()

	barca, err := srv.CreateTeam(ctx, &usecase.ReferenceInput{Name: "Barcelona", Description: "Blaugrana"})
	require.NoError(t, err)
	_, err = srv.CreateTeam(ctx, &usecase.ReferenceInput{Name: "Arsenal"})
	require.NoError(t, err)

	renamed := "Arsenal"
	_, err = srv.UpdateTeam(ctx, barca.ID, &usecase.UpdateReferenceInput{Name: &renamed})
	assert.ErrorIs(t, err, domainerrors.ErrTeamNameTaken)

	description := "Més que un club"
	updated, err := srv.UpdateTeam(ctx, barca.ID, &usecase.UpdateReferenceInput{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Barcelona", updated.Name)
	assert.Equal(t, description, updated.Description)

	page, err := srv.ListTeams(ctx, entity.PageRequest{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 2, page.Pagination.Total)

	require.NoError(t, srv.DeleteTeam(ctx, barca.ID))
	_, err = srv.GetTeam(ctx, barca.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTeamNotFound)
}
