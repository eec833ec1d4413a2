package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
)

// SettingsHandler configuración de empresa y formatos de factura.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.SettingsDTO
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración
// @Description  Solo afecta a facturas nuevas; las emitidas conservan su copia.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsDTO  true  "Configuración"
// @Success      200   {object}  dto.SettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	raw, err := dto.ParseRawObject(c.Body())
	if err != nil {
		return badBody(c)
	}
	in, err := dto.DecodeSettings(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Context(), *in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BillFormat godoc
// @Summary      Dimensiones de un formato de factura
// @Tags         settings
// @Produce      json
// @Param        name  path  string  true  "Nombre del formato (A4, Thermal_80mm, ...)"
// @Success      200   {object}  dto.BillFormatDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/settings/bill-formats/{name} [get]
func (h *SettingsHandler) BillFormat(c *fiber.Ctx) error {
	out, err := h.uc.BillFormat(c.Context(), c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
