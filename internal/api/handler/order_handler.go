package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/api/metrics"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /v1/orders. The result is scoped to what the actor may view.
//
// @Summary      List visible orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	orders, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Orders: orders})
}

// Create handles POST /v1/orders.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), actor, ports.CreateOrderInput{
		Type:       domain.ServiceType(req.Type),
		Address:    req.Address,
		Date:       date,
		Note:       req.Note,
		LandlordID: req.LandlordID,
	})
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Type)).Inc()
	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get an order with its images and chat
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	resp := orderDetailResponse{
		Order:    detail.Order,
		Images:   detail.Images,
		Messages: detail.Messages,
	}
	if resp.Images == nil {
		resp.Images = []*domain.Image{}
	}
	if resp.Messages == nil {
		resp.Messages = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /v1/orders/:id. Details and status may change in one call;
// the whole request is rejected when any part is not permitted.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      updateOrderRequest  true  "Fields to change"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.UpdateOrderInput{Address: req.Address, Note: req.Note}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		in.Date = &date
	}
	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		in.Status = &status
	}

	order, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /v1/orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path  string  true  "Order id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Claim handles PUT /v1/orders/:id/claim.
//
// @Summary      Claim an order (worker)
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/orders/{id}/claim [put]
func (h *OrderHandler) Claim(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	order, err := h.service.Claim(c.Request().Context(), actor, c.Param("id"))
	switch {
	case err == nil:
		metrics.OrderClaimsTotal.WithLabelValues("claimed").Inc()
	case errors.Is(err, domain.ErrConflict):
		metrics.OrderClaimsTotal.WithLabelValues("conflict").Inc()
		return err
	default:
		metrics.OrderClaimsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Assign handles PUT /v1/orders/:id/assign.
//
// @Summary      Assign an order to a worker (admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      assignOrderRequest  true  "Worker"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/orders/{id}/assign [put]
func (h *OrderHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req assignOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.service.Assign(c.Request().Context(), actor, c.Param("id"), req.WorkerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("date must be RFC 3339 or YYYY-MM-DD: %w", domain.ErrInvalidInput)
}
