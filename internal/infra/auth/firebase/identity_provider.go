// Package firebase verifies sign-in tokens and manages password credentials through Firebase Authentication.
package firebase

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// authClient is the subset of *auth.Client used here.
type authClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	PasswordResetLinkWithSettings(ctx context.Context, email string, settings *auth.ActionCodeSettings) (string, error)
}

var isUserNotFound = auth.IsUserNotFound

type identityProvider struct {
	client           authClient
	resetRedirectURL string
	logger           *slog.Logger
}

// Params holds dependencies for the identity provider, injected by Fx.
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityProvider creates a Firebase-backed IdentityProvider. Without Firebase
// configuration every call fails, so the API still starts for catalog-only use.
func NewIdentityProvider(params Params) (service.IdentityProvider, error) {
	cfg := params.Config.Firebase
	if cfg == nil || (cfg.CredentialsPath == "" && cfg.ProjectID == "") {
		params.Logger.Warn("Firebase not configured, identity provider disabled")

		return unconfiguredProvider{}, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(params.Ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return newIdentityProvider(client, cfg.ResetRedirectURL, params.Logger), nil
}

func newIdentityProvider(client authClient, resetRedirectURL string, logger *slog.Logger) *identityProvider {
	return &identityProvider{
		client:           client,
		resetRedirectURL: resetRedirectURL,
		logger:           logger,
	}
}

// VerifyIDToken verifies a Firebase ID token and extracts the identity it carries.
func (p *identityProvider) VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityClaims, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(service.ErrIdentityTokenInvalid, err.Error())
	}

	claims := &entity.IdentityClaims{
		UID:            token.UID,
		Email:          stringClaim(token.Claims, "email"),
		Name:           stringClaim(token.Claims, "name"),
		Picture:        stringClaim(token.Claims, "picture"),
		SignInProvider: token.Firebase.SignInProvider,
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		claims.EmailVerified = verified
	}
	if claims.Email == "" {
		return nil, errors.Wrap(service.ErrIdentityTokenInvalid, "token carries no email")
	}

	return claims, nil
}

// UpsertPassword sets the provider password, creating the provider user when absent.
func (p *identityProvider) UpsertPassword(ctx context.Context, email, displayName, password string) error {
	record, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if !isUserNotFound(err) {
			return errors.Wrap(err, "failed to look up provider user")
		}

		toCreate := (&auth.UserToCreate{}).Email(email).Password(password)
		if displayName != "" {
			toCreate = toCreate.DisplayName(displayName)
		}
		if _, err := p.client.CreateUser(ctx, toCreate); err != nil {
			return errors.Wrap(err, "failed to create provider user")
		}
		p.logger.Info("Created identity provider user", slog.String("email", email))

		return nil
	}

	if _, err := p.client.UpdateUser(ctx, record.UID, (&auth.UserToUpdate{}).Password(password)); err != nil {
		return errors.Wrap(err, "failed to update provider password")
	}

	return nil
}

// PasswordResetLink generates a provider-hosted reset link for email.
func (p *identityProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	var settings *auth.ActionCodeSettings
	if p.resetRedirectURL != "" {
		settings = &auth.ActionCodeSettings{URL: p.resetRedirectURL}
	}

	link, err := p.client.PasswordResetLinkWithSettings(ctx, email, settings)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate password reset link")
	}

	return link, nil
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}

	return ""
}

var errNotConfigured = errors.New("identity provider is not configured")

type unconfiguredProvider struct{}

func (unconfiguredProvider) VerifyIDToken(context.Context, string) (*entity.IdentityClaims, error) {
	return nil, errNotConfigured
}

func (unconfiguredProvider) UpsertPassword(context.Context, string, string, string) error {
	return errNotConfigured
}

func (unconfiguredProvider) PasswordResetLink(context.Context, string) (string, error) {
	return "", errNotConfigured
}
