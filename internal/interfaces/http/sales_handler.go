package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/sales"
)

// SalesHandler maneja el ciclo de vida de las órdenes de venta.
type SalesHandler struct {
	uc *sales.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización (descuenta stock)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "customerName e items"
// @Success      201   {object}  entity.SalesOrder
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/sales-orders [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/sales-orders
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/sales-orders/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar la orden al siguiente estado
// @Description  Quotation → Sales Order → Delivery Order → Invoice → Completed. Completed no cambia.
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.AdvanceSalesStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/advance [post]
func (h *SalesHandler) Advance(c *fiber.Ctx) error {
	out, err := h.uc.Advance(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdvanceSalesStatusResponse{ID: out.ID, Status: out.Status})
}

// ReceivePayment godoc
// @Summary      Registrar el cobro de una orden facturada
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  entity.SalesOrder
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/payment [post]
func (h *SalesHandler) ReceivePayment(c *fiber.Ctx) error {
	out, err := h.uc.ReceivePayment(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadInvoicePDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/invoice.pdf [get]
func (h *SalesHandler) DownloadInvoicePDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.InvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(doc)
}
