package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/procurement"
)

// ProcurementHandler maneja solicitudes y órdenes de compra.
type ProcurementHandler struct {
	uc *procurement.ProcurementUseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.ProcurementUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// CreatePR godoc
// @Summary      Crear solicitud de compra
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePRRequest  true  "requester e items"
// @Success      201   {object}  entity.PurchaseRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests [post]
func (h *ProcurementHandler) CreatePR(c *fiber.Ctx) error {
	var in dto.CreatePRRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.CreatePR(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPRs GET /api/purchase-requests
func (h *ProcurementHandler) ListPRs(c *fiber.Ctx) error {
	out, err := h.uc.ListPRs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApprovePR godoc
// @Summary      Aprobar solicitud pendiente
// @Tags         procurement
// @Produce      json
// @Param        id   path  string  true  "ID de la PR"
// @Success      200  {object}  entity.PurchaseRequest
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/approve [post]
func (h *ProcurementHandler) ApprovePR(c *fiber.Ctx) error {
	out, err := h.uc.ApprovePR(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectPR POST /api/purchase-requests/:id/reject
func (h *ProcurementHandler) RejectPR(c *fiber.Ctx) error {
	out, err := h.uc.RejectPR(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GeneratePO godoc
// @Summary      Convertir PR aprobada en orden de compra
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la PR"
// @Param        body  body  dto.GeneratePORequest  true  "Proveedor"
// @Success      201   {object}  entity.PurchaseOrder
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/purchase-order [post]
func (h *ProcurementHandler) GeneratePO(c *fiber.Ctx) error {
	var in dto.GeneratePORequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.GeneratePO(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPOs GET /api/purchase-orders
func (h *ProcurementHandler) ListPOs(c *fiber.Ctx) error {
	out, err := h.uc.ListPOs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompletePO godoc
// @Summary      Recibir mercancía de una orden de compra
// @Description  Suma las cantidades al stock y recalcula el costo promedio ponderado.
// @Tags         procurement
// @Produce      json
// @Param        id   path  string  true  "ID de la PO"
// @Success      200  {object}  entity.PurchaseOrder
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/complete [post]
func (h *ProcurementHandler) CompletePO(c *fiber.Ctx) error {
	out, err := h.uc.CompletePO(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
