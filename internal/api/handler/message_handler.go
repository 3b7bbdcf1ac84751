package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/api/metrics"
	"github.com/airhost/ops/internal/core/ports"
)

// MessageHandler serves the private chat between an order's landlord and worker.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /v1/orders/:id/messages.
//
// @Summary      Chat history of an order
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  messagesResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id}/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	msgs, err := h.service.List(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse{Messages: msgs})
}

// Send handles POST /v1/orders/:id/messages.
//
// @Summary      Send a chat message to the counterpart
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/orders/{id}/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.service.Send(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, msg)
}
