package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /v1/notifications.
//
// @Summary      Latest own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationsResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: items})
}

// Send handles POST /v1/notifications.
//
// @Summary      Notify a user (admin or worker)
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendNotificationRequest  true  "Notification"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/notifications [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req sendNotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	n, err := h.service.Send(c.Request().Context(), actor, req.UserID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// MarkRead handles PUT /v1/notifications/:id/read.
//
// @Summary      Mark an own notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  errorResponse
// @Router       /v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkRead(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}
