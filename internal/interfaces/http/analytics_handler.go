package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
)

// AnalyticsHandler reportes de ventas (protegido).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas del período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto primer día del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusive (por defecto hoy)"
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con más ingreso
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Máximo 100"  default(10)
// @Success      200  {array}   dto.TopProductDTO
// @Router       /api/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context(), c.Query("start_date"), c.Query("end_date"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
