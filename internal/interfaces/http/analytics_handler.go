package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-india-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// AnalyticsHandler maneja el reporte de ventas.
type AnalyticsHandler struct {
	uc  *analytics.SalesReportUseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.SalesReportUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetSales godoc
// @Summary      Reporte de ventas de los últimos 12 meses
// @Description  Serie mensual, top empresas, top artículos, ventas por día de la semana,
// @Description  ticket promedio, tasa de cobro, clientes recurrentes y crecimiento mensual.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales [get]
func (h *AnalyticsHandler) GetSales(c *fiber.Ctx) error {
	report, err := h.uc.GetSalesReport(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(report)
}
