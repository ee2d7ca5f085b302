package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrDuplicateName is returned when a category or team name is already taken.
	ErrDuplicateName = errors.New("name already taken")
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context, page entity.PageRequest) ([]*entity.Category, int64, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamRepository defines persistence operations for teams.
type TeamRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	List(ctx context.Context, page entity.PageRequest) ([]*entity.Team, int64, error)
	Create(ctx context.Context, team *entity.Team) error
	Update(ctx context.Context, team *entity.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
}
