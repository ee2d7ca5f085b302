// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// bind decodes the request into req and runs its validate tags.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(bindMessage(err)).WrapMessage("bind request")
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error()).WrapMessage("validate request")
	}

	return nil
}

func bindMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}

	return "malformed request body"
}

// pathID parses a uuid path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name).WrapMessage("parse path id")
	}

	return id, nil
}

// optionalID parses an optional uuid query or form value.
func optionalID(raw, name string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name).WrapMessage("parse id")
	}

	return &id, nil
}

// pageRequest reads the page and limit query parameters. Normalization happens in the usecases.
func pageRequest(c echo.Context) entity.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return entity.PageRequest{Page: page, Limit: limit}
}

// caller returns the authenticated actor or renders 401.
func caller(c echo.Context) (usecase.Actor, error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return usecase.Actor{}, domainerrors.ErrUnauthorized.WrapMessage("missing caller")
	}

	return actor, nil
}

// dateRange reads the optional startDate and endDate query parameters. A date
// without a time covers the whole day.
func dateRange(c echo.Context) (entity.DateRange, error) {
	var window entity.DateRange

	start, err := parseDate(c.QueryParam("startDate"), false)
	if err != nil {
		return window, domainerrors.ErrValidationFailed.WithDetails("invalid startDate").WrapMessage("parse date range")
	}
	end, err := parseDate(c.QueryParam("endDate"), true)
	if err != nil {
		return window, domainerrors.ErrValidationFailed.WithDetails("invalid endDate").WrapMessage("parse date range")
	}
	window.Start = start
	window.End = end

	return window, nil
}

func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, nil
}

// amount is a money value accepted as a JSON number, a JSON string, or a form value.
type amount struct {
	decimal.Decimal
	set bool
}

func (a *amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if err := a.Decimal.UnmarshalJSON(data); err != nil {
		return err
	}
	a.set = true

	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (a *amount) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil
	}
	d, err := decimal.NewFromString(param)
	if err != nil {
		return err
	}
	a.Decimal = d
	a.set = true

	return nil
}

func (a amount) ptr() *decimal.Decimal {
	if !a.set {
		return nil
	}
	d := a.Decimal

	return &d
}
