package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (f storeFixtures) userService() usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		UserRepo:   f.users,
		ImageStore: f.images,
		Metrics:    metrics.NoopBusinessMetrics{},
		Config:     f.cfg,
		Logger:     f.logger,
	})
}

func TestUserService_UpdateProfile_ReplacesAvatar(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.userService()
	ctx := context.Background()

	user := f.seedUser(t, "fan@example.com", entity.RoleUser)
	user.Avatar = &entity.Image{PublicID: "avatars/old", URL: "https://cdn.example.com/avatars/old.png"}
	require.NoError(t, f.users.Update(ctx, user))

	upload := entity.ImageUpload{Filename: "me.png", ContentType: "image/png", Data: []byte("me")}
	f.images.On("Upload", mock.Anything, folderAvatars, upload).
		Return(entity.Image{PublicID: "avatars/new", URL: "https://cdn.example.com/avatars/new.png"}, nil).Once()
	f.images.On("Delete", mock.Anything, "avatars/old").Return(nil).Once()

	name, phone := "  Loyal Fan ", "555-0123"
	updated, err := srv.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{Name: &name, Phone: &phone, Avatar: &upload})
	require.NoError(t, err)
	assert.Equal(t, "Loyal Fan", updated.Name)
	assert.Equal(t, "555-0123", updated.Phone)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "avatars/new", updated.Avatar.PublicID)

	blank := " "
	_, err = srv.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{Name: &blank})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_AdminUpdates(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.userService()
	ctx := context.Background()

	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	fan := f.seedUser(t, "fan@example.com", entity.RoleUser)
	actor := customer(admin)

	promoted, deactivated := entity.RoleAdmin, entity.UserStatusDeactivated
	updated, err := srv.UpdateUser(ctx, actor, fan.ID, &usecase.AdminUpdateUserInput{Role: &promoted, Status: &deactivated})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
	assert.False(t, updated.IsActive())

	demoted := entity.RoleUser
	_, err = srv.UpdateUser(ctx, actor, admin.ID, &usecase.AdminUpdateUserInput{Role: &demoted})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = srv.UpdateUser(ctx, actor, admin.ID, &usecase.AdminUpdateUserInput{Status: &deactivated})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	bogus := entity.Role("owner")
	_, err = srv.UpdateUser(ctx, actor, fan.ID, &usecase.AdminUpdateUserInput{Role: &bogus})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.UpdateUser(ctx, actor, uuid.New(), &usecase.AdminUpdateUserInput{Role: &demoted})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	page, err := srv.ListUsers(ctx, entity.UserFilter{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Pagination.Total)

	_, err = srv.ListUsers(ctx, entity.UserFilter{Status: "banned"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_DeleteUser(t *testing.T) {
	f := newStoreFixtures(t)
	srv := f.userService()
	ctx := context.Background()

	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	fan := f.seedUser(t, "fan@example.com", entity.RoleUser)
	fan.Avatar = &entity.Image{PublicID: "avatars/fan", URL: "https://cdn.example.com/avatars/fan.png"}
	require.NoError(t, f.users.Update(ctx, fan))

	assert.ErrorIs(t, srv.DeleteUser(ctx, customer(admin), admin.ID), domainerrors.ErrForbidden)

	f.images.On("Delete", mock.Anything, "avatars/fan").Return(assert.AnError).Once()
	require.NoError(t, srv.DeleteUser(ctx, customer(admin), fan.ID))

	_, err := srv.GetUser(ctx, fan.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
