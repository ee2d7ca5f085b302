package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TeamHandlerParams holds dependencies for TeamHandler, injected by Fx.
type TeamHandlerParams struct {
	fx.In

	TeamUC usecase.TeamUsecase
	Logger *slog.Logger
}

// TeamHandler serves the teams products belong to.
type TeamHandler struct {
	teamUC usecase.TeamUsecase
	logger *slog.Logger
}

// NewTeamHandler is the constructor for TeamHandler.
func NewTeamHandler(params TeamHandlerParams) *TeamHandler {
	return &TeamHandler{
		teamUC: params.TeamUC,
		logger: params.Logger,
	}
}

func (h *TeamHandler) ListTeams(c echo.Context) error {
	page, err := h.teamUC.ListTeams(c.Request().Context(), pageRequest(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page, "")
}

func (h *TeamHandler) GetTeam(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	team, err := h.teamUC.GetTeam(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, team, "")
}

func (h *TeamHandler) CreateTeam(c echo.Context) error {
	var req ReferenceRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := req.createInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	team, err := h.teamUC.CreateTeam(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, team, "Team created successfully")
}

func (h *TeamHandler) UpdateTeam(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ReferenceRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := req.updateInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	team, err := h.teamUC.UpdateTeam(c.Request().Context(), id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, team, "Team updated successfully")
}

// DeleteTeam removes a team and detaches its products.
func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.teamUC.DeleteTeam(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Team deleted successfully")
}
