package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is the administrative state of an account.
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// IsValid checks if the UserStatus is a valid value.
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusDeactivated
}

// User is a storefront account.
type User struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	PasswordHash *string      `json:"-"`
	Role         Role         `json:"role"`
	Status       UserStatus   `json:"status"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone,omitempty"`
	Avatar       *Image       `json:"avatar,omitempty"`
	AuthProvider AuthProvider `json:"authProvider"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Status != UserStatusDeactivated
}

// HasPassword reports whether a local password hash is stored.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Roles returns the roles carried in session tokens.
func (u *User) Roles() Roles {
	return Roles{u.Role}
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role    Role
	Status  UserStatus
	Keyword string
	Page    PageRequest
}
