// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Roles  entity.Roles
}

// IsAdmin reports whether the caller holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Roles.Contains(entity.RoleAdmin)
}

// Owned is a record that belongs to a single user.
type Owned interface {
	IsOwnedBy(userID uuid.UUID) bool
}

// CanAccess reports whether the caller owns the resource or is an admin.
func (a Actor) CanAccess(resource Owned) bool {
	return a.IsAdmin() || resource.IsOwnedBy(a.UserID)
}

// Page is one page of a listing with its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination entity.Pagination
}

// NewPage pairs items with pagination metadata for the request and total count.
func NewPage[T any](items []T, req entity.PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items:      items,
		Pagination: entity.NewPagination(req, total),
	}
}
