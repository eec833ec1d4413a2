package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/application/dto"
)

// CheckoutHandler cobro del carrito.
type CheckoutHandler struct {
	uc *billing.CheckoutUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *billing.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Checkout godoc
// @Summary      Cobrar carrito
// @Description  Valida stock, calcula totales, sella la configuración y guarda la factura.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.BillCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetUserID(c)
	}
	outcome, err := h.uc.Checkout(c.Context(), in)
	if err != nil {
		return writeBillError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(outcome.ToResponse())
}
