package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/api/middleware"
	"github.com/airhost/ops/internal/core/access"
)

// ctxActor returns the actor injected by middleware.ResolveActor.
// A missing actor means the route was mounted without the identity chain.
func ctxActor(c echo.Context) (access.Actor, error) {
	actor, ok := c.Get(middleware.KeyActor).(access.Actor)
	if !ok || actor.UserID == "" || actor.Role == "" {
		return access.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// bind decodes the request into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
