package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/partner"
)

// PartnerHandler maneja el directorio de clientes y proveedores.
type PartnerHandler struct {
	uc *partner.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *partner.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cliente o proveedor
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "name, type (Customer|Supplier), email, phone, address"
// @Success      201   {object}  entity.Partner
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar socios
// @Tags         partners
// @Produce      json
// @Param        type  query  string  false  "Customer o Supplier"
// @Success      200  {array}  entity.Partner
// @Router       /api/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	var filter dto.PartnerFilter
	if err := parseQuery(c, &filter); err != nil {
		return handled(err)
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
