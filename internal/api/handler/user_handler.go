package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/api/metrics"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// UserHandler serves the profile, mode switch and user administration routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me handles GET /v1/users/me.
//
// @Summary      Current user profile with effective role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Profile
// @Failure      401  {object}  errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Me(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// SwitchMode handles PUT /v1/users/me/mode.
//
// @Summary      Switch between landlord and worker mode
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      switchModeRequest  true  "Target mode"
// @Success      200   {object}  ports.Profile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/users/me/mode [put]
func (h *UserHandler) SwitchMode(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req switchModeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.service.SwitchMode(c.Request().Context(), actor, domain.Mode(req.Mode))
	if err != nil {
		return err
	}
	metrics.ModeSwitchesTotal.WithLabelValues(req.Mode).Inc()
	return c.JSON(http.StatusOK, profile)
}

// List handles GET /v1/users.
//
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	users, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// Create handles POST /v1/users.
//
// @Summary      Create a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Dual:     req.Dual,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user (admin or self)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /v1/users/:id. Non-admins may only rename themselves.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.UpdateUserInput{
		Name:        req.Name,
		CanLandlord: req.CanLandlord,
		CanService:  req.CanService,
		IsActive:    req.IsActive,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate handles DELETE /v1/users/:id.
//
// @Summary      Deactivate a user (admin)
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Deactivate(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
