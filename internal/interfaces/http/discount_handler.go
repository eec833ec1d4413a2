package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
)

// DiscountHandler solicitudes de descuento.
type DiscountHandler struct {
	uc *usecase.DiscountUseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *usecase.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Create registra una solicitud a nombre del usuario autenticado si el body no trae userId.
// POST /api/discounts
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus aprueba o rechaza; el aprobador es el usuario autenticado.
// PUT /api/discounts/:id/status
func (h *DiscountHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.DiscountStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete borra varias solicitudes por id.
// DELETE /api/discounts
func (h *DiscountHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteDiscountsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Delete(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GET /api/discounts
func (h *DiscountHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
