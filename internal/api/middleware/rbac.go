package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/api/metrics"
	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
)

// KeyActor holds the access.Actor resolved for the request.
const KeyActor = "actor"

type ActorResolver interface {
	Resolve(ctx context.Context, userID string) (access.Actor, error)
}

// ResolveActor recomputes the effective role from the store on every request.
// It must run after Auth.
func ResolveActor(resolver ActorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(KeyUserID).(string)
			actor, err := resolver.Resolve(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			c.Set(KeyActor, actor)
			return next(c)
		}
	}
}

// RBAC enforces role-based access control on the effective role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(KeyActor).(access.Actor)
			if _, ok := allowed[actor.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// Capability admits the request only when the effective role holds act on res.
func Capability(res access.Resource, act access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(KeyActor).(access.Actor)
			if !access.Allowed(actor.Role, res, act) {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
