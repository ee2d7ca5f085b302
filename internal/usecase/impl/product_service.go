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

// productService implements the ProductUsecase interface.
type productService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	teamRepo     repository.TeamRepository
	images       *imageManager
	pager        pager
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	TeamRepo     repository.TeamRepository
	ImageStore   service.ImageStore
	Metrics      service.BusinessMetrics
	Config       *config.Config
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		teamRepo:     params.TeamRepo,
		images:       &imageManager{store: params.ImageStore, metrics: params.Metrics, logger: params.Logger},
		pager:        newPager(params.Config),
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one page of the filtered catalog.
func (srv *productService) ListProducts(ctx context.Context, filter entity.ProductFilter) (*usecase.Page[*entity.Product], error) {
	filter.Page = srv.pager.normalize(filter.Page)
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("minimum price exceeds maximum price")
	}

	products, total, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return usecase.NewPage(products, filter.Page, total), nil
}

func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
	}

	return product, nil
}

// CreateProduct uploads the pending images and stores the product.
func (srv *productService) CreateProduct(ctx context.Context, createdBy uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductValues(input.Price.IsNegative(), input.Stock); err != nil {
		return nil, err
	}
	if err := srv.checkReferences(ctx, input.CategoryID, input.TeamID); err != nil {
		return nil, err
	}

	images, uploaded, err := srv.images.resolve(ctx, folderProducts, input.Images, nil)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		TeamID:      input.TeamID,
		Images:      images,
		CreatedBy:   createdBy,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("product_id", product.ID.String()))

	return product, nil
}

// UpdateProduct applies the changed fields. Replaced images are removed from the host after commit.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImages := product.Images

	applyProductUpdate(product, input)
	if err := validateProductValues(product.Price.IsNegative(), product.Stock); err != nil {
		return nil, err
	}
	if err := srv.checkReferences(ctx, input.CategoryID, input.TeamID); err != nil {
		return nil, err
	}

	var uploaded []entity.Image
	if input.ReplaceImages {
		product.Images, uploaded, err = srv.images.resolve(ctx, folderProducts, input.Images, previousImages)
		if err != nil {
			return nil, err
		}
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
	}

	if input.ReplaceImages {
		srv.images.discardReplaced(ctx, previousImages, product.Images)
	}

	return product, nil
}

// DeleteProduct removes the product and its reviews in one transaction, then
// deletes their hosted images.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	var (
		product *entity.Product
		reviews []*entity.Review
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()
		reviewRepo := repoFactory.NewReviewRepository()

		found, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
		}
		product = found

		reviews, err = reviewRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete product reviews")
		}

		if err := productRepo.Delete(ctx, id); err != nil {
			return translate(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.images.discard(ctx, product.Images)
	for _, review := range reviews {
		srv.images.discard(ctx, review.Images)
	}

	srv.log(ctx).Info("Product deleted",
		slog.String("product_id", id.String()),
		slog.Int("reviews_removed", len(reviews)),
	)

	return nil
}

func (srv *productService) checkReferences(ctx context.Context, categoryID, teamID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := srv.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			return translate(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound)
		}
	}
	if teamID != nil {
		if _, err := srv.teamRepo.FindByID(ctx, *teamID); err != nil {
			return translate(err, repository.ErrTeamNotFound, domainerrors.ErrTeamNotFound)
		}
	}

	return nil
}

func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	switch {
	case input.ClearCategory:
		product.CategoryID = nil
	case input.CategoryID != nil:
		product.CategoryID = input.CategoryID
	}
	switch {
	case input.ClearTeam:
		product.TeamID = nil
	case input.TeamID != nil:
		product.TeamID = input.TeamID
	}
}

func validateProductValues(negativePrice bool, stock int) error {
	if negativePrice {
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative").WrapMessage("invalid product")
	}
	if stock < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("stock must not be negative").WrapMessage("invalid product")
	}

	return nil
}
