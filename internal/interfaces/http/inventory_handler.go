package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/inventory"
)

// InventoryHandler expone las sugerencias de reabastecimiento.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// GetReplenishmentSuggestions godoc
// @Summary      Sugerencias de reabastecimiento
// @Description  Productos activos bajo el umbral de stock, priorizados por margen bruto,
//               unidades vendidas y déficit.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentSuggestions(c *fiber.Ctx) error {
	out, err := h.replenishment.Suggestions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
