package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// UpdateProfileRequest is the profile body; the avatar arrives as a multipart file.
type UpdateProfileRequest struct {
	Name  *string `json:"name" form:"name" validate:"omitempty,max=100"`
	Phone *string `json:"phone" form:"phone" validate:"omitempty,max=32"`
}

// AdminUpdateUserRequest changes another account.
type AdminUpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role   *string `json:"role" validate:"omitempty,oneof=user admin"`
	Status *string `json:"status" validate:"omitempty,oneof=active deactivated"`
}

// ListUsersQuery holds the admin user filters.
type ListUsersQuery struct {
	Role    string `query:"role" validate:"omitempty,oneof=user admin"`
	Status  string `query:"status" validate:"omitempty,oneof=active deactivated"`
	Keyword string `query:"keyword" validate:"max=100"`
}

// UpdateProfile handles self-service profile changes.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	avatar, err := singleUpload(c, formFieldAvatar)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), userID, &usecase.UpdateProfileInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Avatar: avatar,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// ListUsers lists accounts for admins.
func (h *UserHandler) ListUsers(c echo.Context) error {
	var query ListUsersQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.userUC.ListUsers(c.Request().Context(), entity.UserFilter{
		Role:    entity.Role(query.Role),
		Status:  entity.UserStatus(query.Status),
		Keyword: query.Keyword,
		Page:    pageRequest(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// UpdateUser changes the name, role, or status of an account.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AdminUpdateUserRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.AdminUpdateUserInput{Name: req.Name}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		status := entity.UserStatus(*req.Status)
		input.Status = &status
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), actor, id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}
