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

// teamService implements the TeamUsecase interface.
type teamService struct {
	txManager repository.TransactionManager
	teamRepo  repository.TeamRepository
	images    *imageManager
	pager     pager
	logger    *slog.Logger
}

// TeamServiceParams holds dependencies for TeamService, injected by Fx.
type TeamServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	TeamRepo   repository.TeamRepository
	ImageStore service.ImageStore
	Metrics    service.BusinessMetrics
	Config     *config.Config
	Logger     *slog.Logger
}

// NewTeamService is the constructor for teamService.
func NewTeamService(params TeamServiceParams) usecase.TeamUsecase {
	return &teamService{
		txManager: params.TxManager,
		teamRepo:  params.TeamRepo,
		images:    &imageManager{store: params.ImageStore, metrics: params.Metrics, logger: params.Logger},
		pager:     newPager(params.Config),
		logger:    params.Logger,
	}
}

func (srv *teamService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *teamService) ListTeams(ctx context.Context, page entity.PageRequest) (*usecase.Page[*entity.Team], error) {
	page = srv.pager.normalize(page)

	teams, total, err := srv.teamRepo.List(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list teams")
	}

	return usecase.NewPage(teams, page, total), nil
}

func (srv *teamService) GetTeam(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	team, err := srv.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, repository.ErrTeamNotFound, domainerrors.ErrTeamNotFound)
	}

	return team, nil
}

func (srv *teamService) CreateTeam(ctx context.Context, input *usecase.ReferenceInput) (*entity.Team, error) {
	images, uploaded, err := srv.images.resolve(ctx, folderTeams, input.Images, nil)
	if err != nil {
		return nil, err
	}

	team := &entity.Team{
		Name:        input.Name,
		Description: input.Description,
		Images:      images,
	}
	if err := srv.teamRepo.Create(ctx, team); err != nil {
		srv.images.discard(ctx, uploaded)

		return nil, translate(err, repository.ErrDuplicateName, domainerrors.ErrTeamNameTaken)
	}

	srv.log(ctx).Info("Team created", slog.String("team_id", team.ID.String()))

	return team, nil
}

func (srv *teamService) UpdateTeam(ctx context.Context, id uuid.UUID, input *usecase.UpdateReferenceInput) (*entity.Team, error) {
	team, err := srv.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImages := team.Images

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	var uploaded []entity.Image
	if input.ReplaceImages {
		team.Images, uploaded, err = srv.images.resolve(ctx, folderTeams, input.Images, previousImages)
		if err != nil {
			return nil, err
		}
	}

	if err := srv.teamRepo.Update(ctx, team); err != nil {
		srv.images.discard(ctx, uploaded)
		err = translate(err, repository.ErrDuplicateName, domainerrors.ErrTeamNameTaken)

		return nil, translate(err, repository.ErrTeamNotFound, domainerrors.ErrTeamNotFound)
	}

	if input.ReplaceImages {
		srv.images.discardReplaced(ctx, previousImages, team.Images)
	}

	return team, nil
}

// DeleteTeam detaches the team from its products and removes it.
func (srv *teamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	var team *entity.Team

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		teamRepo := repoFactory.NewTeamRepository()

		found, err := teamRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, repository.ErrTeamNotFound, domainerrors.ErrTeamNotFound)
		}
		team = found

		if err := repoFactory.NewProductRepository().ClearTeam(ctx, id); err != nil {
			return errors.Wrap(err, "failed to detach products")
		}

		return teamRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete team")
	}

	srv.images.discard(ctx, team.Images)

	return nil
}
