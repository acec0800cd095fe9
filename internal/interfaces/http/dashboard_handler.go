package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/analytics"
	"github.com/jhoicas/brecho-pos/internal/application/state"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// DashboardHandler expone el resumen del día y la recarga completa del estado.
type DashboardHandler struct {
	dashboard *analytics.DashboardUseCase
	state     *state.StateUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *analytics.DashboardUseCase, st *state.StateUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, state: st}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// State godoc
// @Summary      Estado completo (recarga explícita)
// @Description  Los perfiles solo se incluyen para ADMIN.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StateResponse
// @Router       /api/state [get]
func (h *DashboardHandler) State(c *fiber.Ctx) error {
	out, err := h.state.Reload(c.UserContext(), GetRole(c) == string(entity.RoleAdmin))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
