package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
)

// DashboardHandler expone el resumen diario del panel (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Resumen del día
// @Description  Ventas, ingresos, arqueo de caja, productos activos, bajo stock y ventas por cajero. Cacheado unos segundos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DailyStatsDTO
// @Router       /api/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetDailyStats(c.UserContext())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
