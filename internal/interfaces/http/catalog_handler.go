package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
)

// HSNCodeHandler catálogo de códigos HSN.
type HSNCodeHandler struct {
	uc *usecase.HSNCodeUseCase
}

// NewHSNCodeHandler construye el handler.
func NewHSNCodeHandler(uc *usecase.HSNCodeUseCase) *HSNCodeHandler {
	return &HSNCodeHandler{uc: uc}
}

// POST /api/hsn-codes
func (h *HSNCodeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHSNCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/hsn-codes/:id
func (h *HSNCodeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PUT /api/hsn-codes/:id
func (h *HSNCodeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateHSNCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/hsn-codes/:id
func (h *HSNCodeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/hsn-codes
func (h *HSNCodeHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BatchHandler lotes de productos.
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// POST /api/batches
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/batches/:id
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PUT /api/batches/:id
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/batches/:id
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/batches
func (h *BatchHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
