package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthorized", fmt.Errorf("resolve: %w", domain.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", fmt.Errorf("edit order: %w", domain.ErrForbidden), http.StatusForbidden, "access forbidden"},
		{"invalid operation", fmt.Errorf("order is completed: %w", domain.ErrInvalidOperation), http.StatusBadRequest, "order is completed: invalid operation"},
		{"conflict", fmt.Errorf("order already claimed: %w", domain.ErrConflict), http.StatusConflict, "order already claimed: conflict"},
		{"no recipient", fmt.Errorf("send: %w", domain.ErrNoRecipient), http.StatusConflict, domain.ErrNoRecipient.Error()},
		{"order not found", fmt.Errorf("get order 42: %w", domain.ErrOrderNotFound), http.StatusNotFound, "order not found"},
		{"generic not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"invalid input", fmt.Errorf("note too long: %w", domain.ErrInvalidInput), http.StatusBadRequest, "note too long: invalid input"},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "email already registered"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
