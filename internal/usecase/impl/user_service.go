// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	images   *imageManager
	pager    pager
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	ImageStore service.ImageStore
	Metrics    service.BusinessMetrics
	Config     *config.Config
	Logger     *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		images:   &imageManager{store: params.ImageStore, metrics: params.Metrics, logger: params.Logger},
		pager:    newPager(params.Config),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile changes the caller's own name, phone and avatar.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty").WrapMessage("invalid profile")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}

	var previous *entity.Image
	var uploaded []entity.Image
	if input.Avatar != nil {
		images, fresh, err := srv.images.resolve(ctx, folderAvatars, []entity.ImageInput{entity.PendingUpload(*input.Avatar)}, nil)
		if err != nil {
			return nil, err
		}
		previous = user.Avatar
		user.Avatar = &images[0]
		uploaded = fresh
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	if previous != nil {
		srv.images.discard(ctx, []entity.Image{*previous})
	}

	srv.log(ctx).Info("Profile updated", slog.String("user_id", user.ID.String()))

	return user, nil
}

func (srv *userService) ListUsers(ctx context.Context, filter entity.UserFilter) (*usecase.Page[*entity.User], error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role must be user or admin").WrapMessage("invalid role filter")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be active or deactivated").WrapMessage("invalid status filter")
	}
	filter.Page = srv.pager.normalize(filter.Page)

	users, total, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return usecase.NewPage(users, filter.Page, total), nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	return user, nil
}

// UpdateUser changes name, role or status. Admins cannot demote or deactivate themselves.
func (srv *userService) UpdateUser(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.AdminUpdateUserInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty").WrapMessage("invalid user update")
		}
		user.Name = name
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("role must be user or admin").WrapMessage("invalid user update")
		}
		if actor.UserID == id && *input.Role != entity.RoleAdmin {
			return nil, domainerrors.ErrForbidden.WithDetails("admins cannot demote themselves").WrapMessage("invalid user update")
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("status must be active or deactivated").WrapMessage("invalid user update")
		}
		if actor.UserID == id && *input.Status == entity.UserStatusDeactivated {
			return nil, domainerrors.ErrForbidden.WithDetails("admins cannot deactivate themselves").WrapMessage("invalid user update")
		}
		user.Status = *input.Status
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	srv.log(ctx).Info("User updated by admin",
		slog.String("user_id", user.ID.String()),
		slog.String("admin_id", actor.UserID.String()),
		slog.String("role", user.Role.String()),
		slog.String("status", string(user.Status)),
	)

	return user, nil
}

// DeleteUser removes an account and its hosted avatar.
func (srv *userService) DeleteUser(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	if actor.UserID == id {
		return domainerrors.ErrForbidden.WithDetails("admins cannot delete their own account").WrapMessage("delete user rejected")
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	if user.Avatar != nil {
		srv.images.discard(ctx, []entity.Image{*user.Avatar})
	}

	srv.log(ctx).Info("User deleted", slog.String("user_id", id.String()), slog.String("admin_id", actor.UserID.String()))

	return nil
}
