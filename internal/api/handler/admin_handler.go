package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/core/ports"
)

type AdminHandler struct {
	stats ports.StatsService
}

func NewAdminHandler(stats ports.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Platform counters (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	stats, err := h.stats.Stats(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
