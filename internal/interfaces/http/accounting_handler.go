package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/accounting"
	"github.com/jhoicas/erp-core/internal/application/dto"
)

// AccountingHandler expone el libro de transacciones.
type AccountingHandler struct {
	uc *accounting.LedgerUseCase
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(uc *accounting.LedgerUseCase) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// ListTransactions godoc
// @Summary      Libro de transacciones
// @Description  Ingresos y gastos registrados más un gasto proyectado por cada orden de compra,
//               ordenados por fecha descendente.
// @Tags         accounting
// @Produce      json
// @Success      200  {array}  entity.Transaction
// @Router       /api/transactions [get]
func (h *AccountingHandler) ListTransactions(c *fiber.Ctx) error {
	out, err := h.uc.ListTransactions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary GET /api/transactions/summary
func (h *AccountingHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddExpense godoc
// @Summary      Registrar gasto operativo
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "description, amount, category, referenceId"
// @Success      201   {object}  entity.Transaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/expenses [post]
func (h *AccountingHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.AddOperationalExpense(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
