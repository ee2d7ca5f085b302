package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register an email/password account.
// IDToken is the identity provider token proving ownership of the email.
type RegisterInput struct {
	IDToken  string
	Name     string
	Phone    string
	Password string
}

// SocialLoginInput defines the data required for a Google or Facebook sign-in.
type SocialLoginInput struct {
	IDToken  string
	Provider entity.AuthProvider
}

// ResetPasswordInput carries the provider token from the reset link and the new password.
type ResetPasswordInput struct {
	IDToken     string
	NewPassword string
}

// ChangePasswordInput defines the data required to change a known password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// AuthOutput returns the session token issued after a successful sign-in.
type AuthOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// AuthUsecase bridges identity provider tokens to local accounts and session tokens.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, idToken string) (*AuthOutput, error)
	SocialLogin(ctx context.Context, input *SocialLoginInput) (*AuthOutput, error)
	// ForgotPassword emails a reset link. Unknown emails succeed silently.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
	// SetPassword attaches a first password to a social-only account.
	SetPassword(ctx context.Context, userID uuid.UUID, password string) error
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
