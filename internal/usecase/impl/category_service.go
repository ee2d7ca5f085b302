package impl

import (
	"context"
	"log/slog"

	"storefront/config"
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

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	images       *imageManager
	pager        pager
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	ImageStore   service.ImageStore
	Metrics      service.BusinessMetrics
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		images:       &imageManager{store: params.ImageStore, metrics: params.Metrics, logger: params.Logger},
		pager:        newPager(params.Config),
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) ListCategories(ctx context.Context, page entity.PageRequest) (*usecase.Page[*entity.Category], error) {
	page = srv.pager.normalize(page)

	categories, total, err := srv.categoryRepo.List(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return usecase.NewPage(categories, page, total), nil
}

func (srv *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound)
	}

	return category, nil
}

func (srv *categoryService) CreateCategory(ctx context.Context, input *usecase.ReferenceInput) (*entity.Category, error) {
	images, uploaded, err := srv.images.resolve(ctx, folderCategories, input.Images, nil)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		Images:      images,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, translate(err, repository.ErrDuplicateName, domainerrors.ErrCategoryNameTaken)
	}

	srv.log(ctx).Info("Category created", slog.String("category_id", category.ID.String()))

	return category, nil
}

func (srv *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *usecase.UpdateReferenceInput) (*entity.Category, error) {
	category, err := srv.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImages := category.Images

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	var uploaded []entity.Image
	if input.ReplaceImages {
		category.Images, uploaded, err = srv.images.resolve(ctx, folderCategories, input.Images, previousImages)
		if err != nil {
			return nil, err
		}
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		srv.images.discard(ctx, uploaded)
		err = translate(err, repository.ErrDuplicateName, domainerrors.ErrCategoryNameTaken)

		return nil, translate(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound)
	}

	if input.ReplaceImages {
		srv.images.discardReplaced(ctx, previousImages, category.Images)
	}

	return category, nil
}

// DeleteCategory detaches the category from its products and removes it. Those
// products are reported as uncategorized afterwards.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		found, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound)
		}
		category = found

		if err := repoFactory.NewProductRepository().ClearCategory(ctx, id); err != nil {
			return errors.Wrap(err, "failed to detach products")
		}

		return categoryRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	srv.images.discard(ctx, category.Images)

	return nil
}
