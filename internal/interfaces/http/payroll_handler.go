package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/payroll"
)

// PayrollHandler maneja empleados y corridas de nómina.
type PayrollHandler struct {
	uc *payroll.PayrollUseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *payroll.PayrollUseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc}
}

// AddEmployee godoc
// @Summary      Registrar empleado
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  entity.Employee
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *PayrollHandler) AddEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return handled(err)
	}
	out, err := h.uc.AddEmployee(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmployees GET /api/employees
func (h *PayrollHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.uc.ListEmployees(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TerminateEmployee POST /api/employees/:id/terminate
func (h *PayrollHandler) TerminateEmployee(c *fiber.Ctx) error {
	out, err := h.uc.TerminateEmployee(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RunPayroll godoc
// @Summary      Ejecutar nómina del mes
// @Description  Suma los salarios de los empleados activos y registra un gasto de nómina.
// @Tags         payroll
// @Produce      json
// @Success      201  {object}  dto.PayrollRunResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payroll/run [post]
func (h *PayrollHandler) RunPayroll(c *fiber.Ctx) error {
	out, err := h.uc.RunPayroll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayrollRuns GET /api/payroll/runs
func (h *PayrollHandler) ListPayrollRuns(c *fiber.Ctx) error {
	out, err := h.uc.ListPayrollRuns(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
