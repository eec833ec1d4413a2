package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + código.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrPrimaryWrite):
		code = "PRIMARY_WRITE_FAILED"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// page lee limit/offset con los topes del listado.
func page(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
