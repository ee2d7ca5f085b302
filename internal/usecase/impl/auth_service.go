package impl

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"strings"

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

var resetEmailTemplate = template.Must(template.New("reset").Parse(
	`<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. Follow the link below to choose a new one.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not ask for this you can ignore this email.</p>`))

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	identity     service.IdentityProvider
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Identity     service.IdentityProvider
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		identity:     params.Identity,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a password account for an email the identity provider has verified.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	claims, err := srv.verify(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	_, err = srv.userRepo.FindByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to look up email")
	}

	hash, err := srv.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = displayName(claims)
	}
	user := &entity.User{
		Email:        normalizeEmail(claims.Email),
		PasswordHash: &hash,
		Role:         entity.RoleUser,
		Status:       entity.UserStatusActive,
		Name:         name,
		Phone:        strings.TrimSpace(input.Phone),
		AuthProvider: entity.AuthProviderEmail,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, translate(err, repository.ErrDuplicateEmail, domainerrors.ErrUserAlreadyExists)
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID.String()))

	return srv.issue(user)
}

// Login exchanges a verified provider token for a session token.
func (srv *authService) Login(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}
	if !user.IsActive() {
		return nil, domainerrors.ErrAccountDeactivated.WrapMessage("login rejected")
	}

	return srv.issue(user)
}

// SocialLogin signs in with Google or Facebook, creating the account on first use.
func (srv *authService) SocialLogin(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.AuthOutput, error) {
	if !input.Provider.IsSocial() {
		return nil, domainerrors.ErrValidationFailed.
			WithDetails("provider must be google or facebook").
			WrapMessage("unsupported social provider")
	}

	claims, err := srv.verify(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return srv.createSocialUser(ctx, claims, input.Provider)
	case err != nil:
		return nil, errors.Wrap(err, "failed to look up email")
	}

	if !user.IsActive() {
		return nil, domainerrors.ErrAccountDeactivated.WrapMessage("social login rejected")
	}

	if upgraded := user.AuthProvider.WithSocial(); upgraded != user.AuthProvider {
		user.AuthProvider = upgraded
		if err := srv.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to link social login")
		}
		srv.log(ctx).Info("Social login linked", slog.String("user_id", user.ID.String()), slog.String("provider", string(input.Provider)))
	}

	return srv.issue(user)
}

func (srv *authService) createSocialUser(ctx context.Context, claims *entity.IdentityClaims, provider entity.AuthProvider) (*usecase.AuthOutput, error) {
	user := &entity.User{
		Email:        normalizeEmail(claims.Email),
		Role:         entity.RoleUser,
		Status:       entity.UserStatusActive,
		Name:         displayName(claims),
		AuthProvider: provider,
	}
	if claims.Picture != "" {
		user.Avatar = &entity.Image{URL: claims.Picture}
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, translate(err, repository.ErrDuplicateEmail, domainerrors.ErrUserAlreadyExists)
	}

	srv.log(ctx).Info("User registered via social login", slog.String("user_id", user.ID.String()), slog.String("provider", string(provider)))

	return srv.issue(user)
}

// ForgotPassword emails a provider reset link. Unknown emails get no email and no error.
func (srv *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domainerrors.ErrValidationFailed.WithDetails("email is required").WrapMessage("missing email")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Password reset requested for unknown email")

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up email")
	}

	link, err := srv.identity.PasswordResetLink(ctx, user.Email)
	if err != nil {
		return domainerrors.ErrIdentityProviderFailed.WrapMessage(err.Error())
	}

	var body bytes.Buffer
	if err := resetEmailTemplate.Execute(&body, struct{ Name, Link string }{user.Name, link}); err != nil {
		return errors.Wrap(err, "failed to render reset email")
	}

	if err := srv.mailer.Send(ctx, &service.EmailMessage{
		To:       user.Email,
		Subject:  "Reset your password",
		HTMLBody: body.String(),
	}); err != nil {
		return errors.Wrap(err, "failed to send reset email")
	}

	return nil
}

// ResetPassword sets a new password for the email proven by the reset token.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	claims, err := srv.verify(ctx, input.IDToken)
	if err != nil {
		return err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	return srv.storePassword(ctx, user, input.NewPassword)
}

// ChangePassword replaces a known password after checking the current one.
func (srv *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}
	if !user.HasPassword() {
		return domainerrors.ErrPasswordNotSet.WrapMessage("change password rejected")
	}
	if !srv.hasher.Check(input.CurrentPassword, *user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WithMessage("Current password is incorrect").WrapMessage("change password rejected")
	}

	return srv.storePassword(ctx, user, input.NewPassword)
}

// SetPassword gives a social-only account its first password.
func (srv *authService) SetPassword(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}
	if user.HasPassword() {
		return domainerrors.ErrPasswordAlreadySet.WrapMessage("set password rejected")
	}

	return srv.storePassword(ctx, user, password)
}

func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	return user, nil
}

// storePassword writes the local hash first and then the provider credential.
func (srv *authService) storePassword(ctx context.Context, user *entity.User, password string) error {
	hash, err := srv.hashPassword(password)
	if err != nil {
		return err
	}

	user.PasswordHash = &hash
	user.AuthProvider = user.AuthProvider.WithPassword()
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return translate(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	if err := srv.identity.UpsertPassword(ctx, user.Email, user.Name, password); err != nil {
		srv.log(ctx).Error("Failed to sync password with identity provider",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)

		return domainerrors.ErrIdentityProviderFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("Password updated", slog.String("user_id", user.ID.String()))

	return nil
}

func (srv *authService) hashPassword(password string) (string, error) {
	hash, err := srv.hasher.Hash(password)
	if errors.Is(err, domainerrors.ErrPasswordStrength) {
		return "", err
	}
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return hash, nil
}

func (srv *authService) verify(ctx context.Context, idToken string) (*entity.IdentityClaims, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("missing identity token")
	}

	claims, err := srv.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, service.ErrIdentityTokenInvalid) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
		}

		return nil, domainerrors.ErrIdentityProviderFailed.WrapMessage(err.Error())
	}
	if claims.Email == "" {
		return nil, domainerrors.ErrInvalidToken.WithDetails("token carries no email").WrapMessage("identity token without email")
	}

	return claims, nil
}

func (srv *authService) issue(user *entity.User) (*usecase.AuthOutput, error) {
	token, expiresAt, err := srv.tokenService.GenerateToken(user.ID, user.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.AuthOutput{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func displayName(claims *entity.IdentityClaims) string {
	if name := strings.TrimSpace(claims.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(claims.Email, "@")

	return local
}
