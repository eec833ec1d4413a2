package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/application/dto"
)

// CartHandler operaciones del carrito sin estado: el cliente envía las líneas en cada llamada.
type CartHandler struct {
	uc *billing.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *billing.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Totals godoc
// @Summary      Calcular totales del carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartTotalsRequest  true  "Carrito"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/totals [post]
func (h *CartHandler) Totals(c *fiber.Ctx) error {
	var in dto.CartTotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Totals(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartAddItemRequest  true  "Carrito y producto"
// @Success      200   {object}  dto.CartResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.CartAddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartQuantityRequest  true  "Carrito y nueva cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/quantity [post]
func (h *CartHandler) ChangeQuantity(c *fiber.Ctx) error {
	var in dto.CartQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeQuantity(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BackSolve godoc
// @Summary      Descuento a partir de un total editado
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BackSolveRequest  true  "Subtotal, impuesto y total deseado"
// @Success      200   {object}  dto.BackSolveResponse
// @Router       /api/cart/back-solve [post]
func (h *CartHandler) BackSolve(c *fiber.Ctx) error {
	var in dto.BackSolveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.BackSolve(in))
}
