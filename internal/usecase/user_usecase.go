package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the profile fields a user may change on their own account.
type UpdateProfileInput struct {
	Name   *string
	Phone  *string
	Avatar *entity.ImageUpload
}

// AdminUpdateUserInput carries the account fields only an admin may change.
type AdminUpdateUserInput struct {
	Name   *string
	Role   *entity.Role
	Status *entity.UserStatus
}

// UserUsecase defines profile and user administration operations.
type UserUsecase interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ListUsers(ctx context.Context, filter entity.UserFilter) (*Page[*entity.User], error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, input *AdminUpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
}
