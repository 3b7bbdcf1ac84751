package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	KeyUserID   = "user_id"
	KeyRole     = "role"
	KeyTokenID  = "jti"
	KeyTokenExp = "token_exp"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the JWT and injects its claims into the context.
// A nil revoked skips the denylist lookup.
func Auth(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}
			jti, _ := claims["jti"].(string)
			exp, _ := claims.GetExpirationTime()

			if revoked != nil && jti != "" {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "token check unavailable").SetInternal(err)
				}
				if isRevoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(KeyUserID, sub)
			c.Set(KeyRole, claims["role"])
			c.Set(KeyTokenID, jti)
			if exp != nil {
				c.Set(KeyTokenExp, exp.Time)
			} else {
				c.Set(KeyTokenExp, time.Time{})
			}

			return next(c)
		}
	}
}
