package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/domain"
)

var validate = validator.New()

// errInvalidDate fecha de query que no parsea como RFC3339.
var errInvalidDate = fmt.Errorf("%w: fecha inválida, use RFC3339", domain.ErrInvalidInput)

// parseAndValidate decodifica el body JSON y lo valida con las etiquetas
// `validate` del DTO. Devuelve false si ya respondió el error.
func parseAndValidate(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return false
	}
	return true
}

// respondError mapea los errores de dominio a su código HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock disponible insuficiente"})
	case errors.Is(err, domain.ErrCountCompleted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COUNT_COMPLETED", Message: "el conteo ya fue completado"})
	case errors.Is(err, domain.ErrCountEmpty):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COUNT_EMPTY", Message: "el conteo no tiene ítems registrados"})
	case errors.Is(err, domain.ErrAuditNotEditable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "AUDIT_NOT_EDITABLE", Message: "la auditoría ya no admite cambios"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "operación en conflicto con el estado actual"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
