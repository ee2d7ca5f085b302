package service

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrIdentityTokenInvalid is returned when the provider rejects a token.
var ErrIdentityTokenInvalid = errors.New("identity token invalid")

// IdentityProvider is the external issuer that verifies sign-in tokens and stores
// its own copy of password credentials.
type IdentityProvider interface {
	// VerifyIDToken verifies a provider-issued token and returns the identity it carries.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityClaims, error)

	// UpsertPassword writes the provider-side password for email, creating the
	// provider user first when it does not exist yet.
	UpsertPassword(ctx context.Context, email, displayName, password string) error

	// PasswordResetLink generates a provider-hosted password reset link.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}
