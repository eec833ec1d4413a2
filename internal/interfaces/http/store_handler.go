package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
)

// StoreHandler maneja las peticiones HTTP para tiendas (protegido).
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create crea una tienda.
// POST /api/stores
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una tienda.
// GET /api/stores/:id
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza una tienda.
// PUT /api/stores/:id
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List lista tiendas.
// GET /api/stores
func (h *StoreHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
