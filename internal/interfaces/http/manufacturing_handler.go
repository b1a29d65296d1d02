package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/manufacturing"
)

// ManufacturingHandler maneja listas de materiales y órdenes de producción.
type ManufacturingHandler struct {
	uc *manufacturing.ManufacturingUseCase
}

// NewManufacturingHandler construye el handler.
func NewManufacturingHandler(uc *manufacturing.ManufacturingUseCase) *ManufacturingHandler {
	return &ManufacturingHandler{uc: uc}
}

// CreateBOM godoc
// @Summary      Crear lista de materiales
// @Tags         manufacturing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "Producto terminado y componentes por unidad"
// @Success      201   {object}  entity.BOM
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *ManufacturingHandler) CreateBOM(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.CreateBOM(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBOMs GET /api/boms
func (h *ManufacturingHandler) ListBOMs(c *fiber.Ctx) error {
	out, err := h.uc.ListBOMs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateProductionOrder godoc
// @Summary      Planificar una orden de producción
// @Tags         manufacturing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "bomId y quantity"
// @Success      201   {object}  entity.ProductionOrder
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production-orders [post]
func (h *ManufacturingHandler) CreateProductionOrder(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.CreateProductionOrder(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProductionOrders GET /api/production-orders
func (h *ManufacturingHandler) ListProductionOrders(c *fiber.Ctx) error {
	out, err := h.uc.ListProductionOrders(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompleteProduction godoc
// @Summary      Completar producción
// @Description  Consume los componentes y suma el producto terminado; todo o nada.
// @Tags         manufacturing
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de producción"
// @Success      200  {object}  entity.ProductionOrder
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.InsufficientStockResponse
// @Router       /api/production-orders/{id}/complete [post]
func (h *ManufacturingHandler) CompleteProduction(c *fiber.Ctx) error {
	out, err := h.uc.CompleteProduction(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
