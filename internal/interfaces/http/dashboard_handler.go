package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/aquagest/internal/application/analytics"
)

// DashboardHandler expone los agregados del negocio.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard GET /api/dashboard
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
