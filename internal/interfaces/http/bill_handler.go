package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
)

// BillHandler alta y consulta de facturas finalizadas.
type BillHandler struct {
	checkout *billing.CheckoutUseCase
	query    *billing.BillQueryUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(checkout *billing.CheckoutUseCase, query *billing.BillQueryUseCase) *BillHandler {
	return &BillHandler{checkout: checkout, query: query}
}

// Create godoc
// @Summary      Guardar factura finalizada
// @Description  Acepta claves en camelCase, snake_case o nombres heredados. Responde con el estado de cada almacén.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BillDTO  true  "Factura"
// @Success      201   {object}  dto.BillCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	raw, err := dto.ParseRawObject(c.Body())
	if err != nil {
		return badBody(c)
	}
	outcome, err := h.checkout.Submit(c.Context(), raw)
	if err != nil {
		return writeBillError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(outcome.ToResponse())
}

// List godoc
// @Summary      Listar facturas (más recientes primero)
// @Tags         bills
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BillListResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.query.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         bills
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// writeBillError como writeError pero con código propio para factura repetida.
func writeBillError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_BILL", Message: err.Error()})
	}
	return writeError(c, err)
}
