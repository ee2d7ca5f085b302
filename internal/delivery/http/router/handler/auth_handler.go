package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler bridges identity provider tokens to session tokens.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest is the email/password registration body.
type RegisterRequest struct {
	IDToken  string `json:"idToken"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest carries the provider token when it is not sent as a bearer header.
type LoginRequest struct {
	IDToken string `json:"idToken"`
}

// SocialLoginRequest is the Google or Facebook sign-in body.
type SocialLoginRequest struct {
	IDToken  string `json:"idToken"`
	Provider string `json:"provider" validate:"required,oneof=google facebook"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest sets a new password with the provider token from the reset link.
type ResetPasswordRequest struct {
	IDToken     string `json:"idToken"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePasswordRequest changes a known password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// SetPasswordRequest attaches a first password to a social account.
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by every successful sign-in.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *entity.User `json:"user"`
}

func toAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      output.User,
	}
}

// providerToken prefers the identity provider token from the bearer header.
func providerToken(c echo.Context, fromBody string) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}

	return strings.TrimSpace(fromBody)
}

// Register handles email/password registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		IDToken:  providerToken(c, req.IDToken),
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toAuthResponse(output), "User registered successfully")
}

// Login handles email/password sign-in.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.Login(c.Request().Context(), providerToken(c, req.IDToken))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output), "Login successful")
}

// SocialLogin handles Google and Facebook sign-in.
func (h *AuthHandler) SocialLogin(c echo.Context) error {
	var req SocialLoginRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.SocialLogin(c.Request().Context(), &usecase.SocialLoginInput{
		IDToken:  providerToken(c, req.IDToken),
		Provider: entity.AuthProvider(req.Provider),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output), "Login successful")
}

// ForgotPassword emails a reset link. The answer is the same whether or not the email is known.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "If the account exists, a reset link has been sent")
}

// ResetPassword stores a new password for the account proven by the reset token.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		IDToken:     providerToken(c, req.IDToken),
		NewPassword: req.NewPassword,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password has been reset")
}

// ChangePassword handles a password change by the signed-in user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.ChangePassword(c.Request().Context(), userID, &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// SetPassword attaches a first password to a social-only account.
func (h *AuthHandler) SetPassword(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req SetPasswordRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.SetPassword(c.Request().Context(), userID, req.Password); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password set successfully")
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Logout is stateless; clients drop their session token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "Logged out")
}
