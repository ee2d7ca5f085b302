package entity

// AuthProvider records which sign-in methods a user account supports.
type AuthProvider string

const (
	AuthProviderEmail    AuthProvider = "email"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderFacebook AuthProvider = "facebook"
	// AuthProviderBoth marks an account usable with a password and a social login.
	AuthProviderBoth AuthProvider = "both"
)

// IsValid checks if the AuthProvider is a valid value.
func (p AuthProvider) IsValid() bool {
	switch p {
	case AuthProviderEmail, AuthProviderGoogle, AuthProviderFacebook, AuthProviderBoth:
		return true
	default:
		return false
	}
}

// IsSocial reports whether the provider is a federated social login.
func (p AuthProvider) IsSocial() bool {
	return p == AuthProviderGoogle || p == AuthProviderFacebook
}

// WithPassword returns the provider tag after a local password is attached.
func (p AuthProvider) WithPassword() AuthProvider {
	if p.IsSocial() {
		return AuthProviderBoth
	}

	return p
}

// WithSocial returns the provider tag after a social login is attached.
// Only password accounts are upgraded; social-only accounts keep their tag.
func (p AuthProvider) WithSocial() AuthProvider {
	if p == AuthProviderEmail {
		return AuthProviderBoth
	}

	return p
}

// IdentityClaims is what the external identity provider vouches for after verifying a token.
type IdentityClaims struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	// SignInProvider is the provider's own sign-in method name, e.g. "password" or "google.com".
	SignInProvider string
}
