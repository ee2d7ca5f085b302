package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
	q  *query.Query
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{
		db: db,
		q:  query.Use(db),
	}
}

// FindByID retrieves a category by its unique ID.
func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	categoryM, err := repo.q.CategoryModel.WithContext(ctx).
		Where(repo.q.CategoryModel.ID.Eq(id)).
		First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(categoryM), nil
}

// List returns one page of categories ordered by name.
func (repo *categoryRepository) List(ctx context.Context, page entity.PageRequest) ([]*entity.Category, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.CategoryModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count categories")
	}

	var categoryModels []*model.CategoryModel
	if err := repo.db.WithContext(ctx).
		Scopes(paginate(page)).
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, total, nil
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = newID()
	}
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// Update writes the name, description and images of a category.
func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)
	categoryM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Select("name", "description", "images", "updated_at").
		Updates(categoryM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateName
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// Delete removes a category by ID.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.q.CategoryModel.WithContext(ctx).
		Where(repo.q.CategoryModel.ID.Eq(id)).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// teamRepository implements the repository.TeamRepository interface.
type teamRepository struct {
	db *gorm.DB
	q  *query.Query
}

// NewTeamRepository is the constructor for teamRepository.
func NewTeamRepository(db *gorm.DB) repository.TeamRepository {
	return &teamRepository{
		db: db,
		q:  query.Use(db),
	}
}

// FindByID retrieves a team by its unique ID.
func (repo *teamRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	teamM, err := repo.q.TeamModel.WithContext(ctx).
		Where(repo.q.TeamModel.ID.Eq(id)).
		First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTeamNotFound
		}

		return nil, errors.Wrap(err, "failed to find team by id")
	}

	return toTeamDomain(teamM), nil
}

// List returns one page of teams ordered by name.
func (repo *teamRepository) List(ctx context.Context, page entity.PageRequest) ([]*entity.Team, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.TeamModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count teams")
	}

	var teamModels []*model.TeamModel
	if err := repo.db.WithContext(ctx).
		Scopes(paginate(page)).
		Order("name ASC").
		Find(&teamModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list teams")
	}

	teams := make([]*entity.Team, 0, len(teamModels))
	for _, teamM := range teamModels {
		teams = append(teams, toTeamDomain(teamM))
	}

	return teams, total, nil
}

// Create persists a new team.
func (repo *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	if team.ID == uuid.Nil {
		team.ID = newID()
	}
	teamM := fromTeamDomain(team)

	if err := repo.db.WithContext(ctx).Create(teamM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create team")
	}

	team.CreatedAt = teamM.CreatedAt
	team.UpdatedAt = teamM.UpdatedAt

	return nil
}

// Update writes the name, description and images of a team.
func (repo *teamRepository) Update(ctx context.Context, team *entity.Team) error {
	teamM := fromTeamDomain(team)
	teamM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.TeamModel{}).
		Where("id = ?", team.ID).
		Select("name", "description", "images", "updated_at").
		Updates(teamM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateName
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update team")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTeamNotFound
	}

	team.UpdatedAt = teamM.UpdatedAt

	return nil
}

// Delete removes a team by ID.
func (repo *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.q.TeamModel.WithContext(ctx).
		Where(repo.q.TeamModel.ID.Eq(id)).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete team")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTeamNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Images:      toImagesDomain(data.Images),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Images:      fromImagesDomain(data.Images),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toTeamDomain(data *model.TeamModel) *entity.Team {
	return &entity.Team{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Images:      toImagesDomain(data.Images),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTeamDomain(data *entity.Team) *model.TeamModel {
	return &model.TeamModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Images:      fromImagesDomain(data.Images),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
