package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/erp-core/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores del tablero.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (totalStockValue, totalRevenue, lowStockCount,
// productCount, openSalesOrders, pendingPRs, categories).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
