package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/api/metrics"
	"github.com/airhost/ops/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain and access-policy errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// notFoundMessages keeps the resource name in 404 bodies without echoing
// wrapped context such as ids.
var notFoundMessages = []struct {
	err error
	msg string
}{
	{domain.ErrOrderNotFound, "order not found"},
	{domain.ErrUserNotFound, "user not found"},
	{domain.ErrImageNotFound, "image not found"},
	{domain.ErrCommentNotFound, "comment not found"},
	{domain.ErrNotificationNotFound, "notification not found"},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Warn().Err(he.Internal).Str("path", c.Path()).Int("status", he.Code).Msg("request failed")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Access-policy outcomes.
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		denied("unauthorized")
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		denied("forbidden")
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNoRecipient):
		denied("no_recipient")
		return http.StatusConflict, domain.ErrNoRecipient.Error()
	case errors.Is(err, domain.ErrConflict):
		denied("conflict")
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidOperation):
		denied("invalid_operation")
		return http.StatusBadRequest, err.Error()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		for _, nf := range notFoundMessages {
			if errors.Is(err, nf.err) {
				return http.StatusNotFound, nf.msg
			}
		}
		return http.StatusNotFound, "not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func denied(reason string) {
	metrics.AccessDeniedTotal.WithLabelValues(reason).Inc()
}
