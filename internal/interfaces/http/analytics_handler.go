package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/erp-core/internal/application/analytics"
	"github.com/jhoicas/erp-core/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints de analítica de rentabilidad.
type AnalyticsHandler struct {
	uc *appanalytics.MarginsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.MarginsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetMargins godoc
// @Summary      Reporte de márgenes por cliente y ranking de productos (Pareto 80/20)
// @Description  Rentabilidad de las órdenes de venta del período y el ranking de productos
//               por utilidad bruta con análisis de Pareto.
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top_n       query  int     false  "Máx. productos en el ranking (default 20, max 200)."
// @Success      200  {object}  dto.MarginsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/margins [get]
func (h *AnalyticsHandler) GetMargins(c *fiber.Ctx) error {
	var req dto.MarginsReportRequest
	if err := parseQuery(c, &req); err != nil {
		return handled(err)
	}
	report, err := h.uc.GetMarginsReport(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
