package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveredOrder(t *testing.T, srv usecase.OrderUsecase, user *entity.User, product *entity.Product) *entity.Order {
	t.Helper()

	order := placeOrder(t, srv, user, product, 1)
	for _, status := range []entity.OrderStatus{entity.OrderStatusShipped, entity.OrderStatusDelivered} {
		_, err := srv.UpdateOrderStatus(context.Background(), order.ID, status)
		require.NoError(t, err)
	}

	return order
}

func assertRating(t *testing.T, f storeFixtures, productID uuid.UUID, rating float64, count int) {
	t.Helper()

	product, err := f.products.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.InDelta(t, rating, product.Rating, 0.001)
	assert.Equal(t, count, product.NumOfReviews)
}

func TestReviewService_RatingFollowsReviews(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	orders := f.orderService()
	srv := f.reviewService()
	ctx := context.Background()

	alice := f.seedUser(t, "alice@example.com", entity.RoleUser)
	bob := f.seedUser(t, "bob@example.com", entity.RoleUser)
	kit := f.seedProduct(t, "Training Kit", "45.00", 10)
	assertRating(t, f, kit.ID, 0, 0)

	aliceOrder := deliveredOrder(t, orders, alice, kit)
	bobOrder := deliveredOrder(t, orders, bob, kit)

	aliceReview, err := srv.CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID, OrderID: aliceOrder.ID, Rating: 4, Comment: "  Fits well  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fits well", aliceReview.Comment)
	assertRating(t, f, kit.ID, 4.0, 1)

	bobReview, err := srv.CreateReview(ctx, bob.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID, OrderID: bobOrder.ID, Rating: 5,
	})
	require.NoError(t, err)
	assertRating(t, f, kit.ID, 4.5, 2)

	require.NoError(t, srv.DeleteReview(ctx, customer(alice), aliceReview.ID))
	assertRating(t, f, kit.ID, 5.0, 1)

	require.NoError(t, srv.DeleteReview(ctx, customer(bob), bobReview.ID))
	assertRating(t, f, kit.ID, 0, 0)
}

func TestReviewService_CreateReview_Eligibility(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	orders := f.orderService()
	srv := f.reviewService()
	ctx := context.Background()

	alice := f.seedUser(t, "alice@example.com", entity.RoleUser)
	bob := f.seedUser(t, "bob@example.com", entity.RoleUser)
	kit := f.seedProduct(t, "Training Kit", "45.00", 10)
	ball := f.seedProduct(t, "Match Ball", "20.00", 10)

	pending := placeOrder(t, orders, alice, kit, 1)
	delivered := deliveredOrder(t, orders, alice, kit)

	cases := []struct {
		name    string
		userID  uuid.UUID
		input   usecase.CreateReviewInput
		wantErr error
	}{
		{
			name:    "rating out of range",
			userID:  alice.ID,
			input:   usecase.CreateReviewInput{ProductID: kit.ID, OrderID: delivered.ID, Rating: 6},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "order not delivered",
			userID:  alice.ID,
			input:   usecase.CreateReviewInput{ProductID: kit.ID, OrderID: pending.ID, Rating: 3},
			wantErr: domainerrors.ErrReviewNotAllowed,
		},
		{
			name:    "product not in order",
			userID:  alice.ID,
			input:   usecase.CreateReviewInput{ProductID: ball.ID, OrderID: delivered.ID, Rating: 3},
			wantErr: domainerrors.ErrReviewNotAllowed,
		},
		{
			name:    "order of another user",
			userID:  bob.ID,
			input:   usecase.CreateReviewInput{ProductID: kit.ID, OrderID: delivered.ID, Rating: 3},
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "unknown order",
			userID:  alice.ID,
			input:   usecase.CreateReviewInput{ProductID: kit.ID, OrderID: uuid.New(), Rating: 3},
			wantErr: domainerrors.ErrOrderNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := srv.CreateReview(ctx, tc.userID, &tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	_, err := srv.CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{ProductID: kit.ID, OrderID: delivered.ID, Rating: 3})
	require.NoError(t, err)

	_, err = srv.CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{ProductID: kit.ID, OrderID: delivered.ID, Rating: 2})
	assert.ErrorIs(t, err, domainerrors.ErrReviewAlreadyExists)
	assertRating(t, f, kit.ID, 3.0, 1)
}

func TestReviewService_CreateReview_DiscardsUploadsOnFailure(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	orders := f.orderService()
	srv := f.reviewService()

	alice := f.seedUser(t, "alice@example.com", entity.RoleUser)
	kit := f.seedProduct(t, "Training Kit", "45.00", 10)
	pending := placeOrder(t, orders, alice, kit, 1)

	upload := entity.ImageUpload{Filename: "photo.png", ContentType: "image/png", Data: []byte("png")}
	hosted := entity.Image{PublicID: "reviews/photo", URL: "https://cdn.example.com/reviews/photo.png"}
	f.images.On("Upload", mock.Anything, folderReviews, upload).Return(hosted, nil).Once()
	f.images.On("Delete", mock.Anything, "reviews/photo").Return(nil).Once()

	_, err := srv.CreateReview(context.Background(), alice.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID,
		OrderID:   pending.ID,
		Rating:    5,
		Images:    []entity.ImageInput{entity.PendingUpload(upload)},
	})
	assert.ErrorIs(t, err, domainerrors.ErrReviewNotAllowed)
}

func TestReviewService_UpdateAndModeration(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	orders := f.orderService()
	srv := f.reviewService()
	ctx := context.Background()

	alice := f.seedUser(t, "alice@example.com", entity.RoleUser)
	mallory := f.seedUser(t, "mallory@example.com", entity.RoleUser)
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	kit := f.seedProduct(t, "Training Kit", "45.00", 10)
	order := deliveredOrder(t, orders, alice, kit)

	review, err := srv.CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID, OrderID: order.ID, Rating: 2, Comment: "this shit fell apart",
	})
	require.NoError(t, err)
	assert.NotContains(t, review.Comment, "shit")
	assert.Contains(t, review.Comment, "fell apart")

	rating := 5
	_, err = srv.UpdateReview(ctx, customer(mallory), review.ID, &usecase.UpdateReviewInput{Rating: &rating})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assertRating(t, f, kit.ID, 2.0, 1)

	comment := "replacement sent, great service"
	updated, err := srv.UpdateReview(ctx, customer(admin), review.ID, &usecase.UpdateReviewInput{Rating: &rating, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, comment, updated.Comment)
	assertRating(t, f, kit.ID, 5.0, 1)

	page, err := srv.ListReviews(ctx, entity.ReviewFilter{ProductID: &kit.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 5, page.Items[0].Rating)

	assert.ErrorIs(t, srv.DeleteReview(ctx, customer(mallory), review.ID), domainerrors.ErrForbidden)
	_, err = srv.GetReview(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrReviewNotFound)
}

func TestReviewService_RejectsForeignHostedImages(t *testing.T) {
	f := newStoreFixtures(t)
	f.quietSideEffects()
	srv := f.reviewService()
	ctx := context.Background()

	alice := f.seedUser(t, "alice@example.com", entity.RoleUser)
	kit := f.seedProduct(t, "Kit", "45.00", 5)
	order := deliveredOrder(t, f.orderService(), alice, kit)

	_, err := srv.CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID, OrderID: order.ID, Rating: 4,
		Images: []entity.ImageInput{entity.HostedImage(kit.Images[0])},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	photo := entity.ImageUpload{Filename: "mine.png", ContentType: "image/png", Data: []byte("mine")}
	mine := entity.Image{PublicID: "reviews/mine", URL: "https://cdn.example.com/reviews/mine.png"}
	f.images.On("Upload", mock.Anything, folderReviews, photo).Return(mine, nil).Once()

	review, err := srv.CreateReview(ctx, alice.ID, &usecase.CreateReviewInput{
		ProductID: kit.ID, OrderID: order.ID, Rating: 4,
		Images: []entity.ImageInput{entity.PendingUpload(photo)},
	})
	require.NoError(t, err)

	_, err = srv.UpdateReview(ctx, customer(alice), review.ID, &usecase.UpdateReviewInput{
		Images:        []entity.ImageInput{entity.HostedImage(mine), entity.HostedImage(kit.Images[0])},
		ReplaceImages: true,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	updated, err := srv.UpdateReview(ctx, customer(alice), review.ID, &usecase.UpdateReviewInput{
		Images:        []entity.ImageInput{entity.HostedImage(mine)},
		ReplaceImages: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"reviews/mine"}, entity.PublicIDs(updated.Images))

	f.images.On("Delete", mock.Anything, "reviews/mine").Return(nil).Once()
	require.NoError(t, srv.DeleteReview(ctx, customer(alice), review.ID))

	f.images.AssertNotCalled(t, "Delete", mock.Anything, kit.Images[0].PublicID)
	stored, err := f.products.FindByID(ctx, kit.ID)
	require.NoError(t, err)
	assert.Equal(t, kit.Images, stored.Images)
}
