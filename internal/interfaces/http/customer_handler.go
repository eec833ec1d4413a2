package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes (facturación, protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
