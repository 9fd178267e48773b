// Package http expone la API REST sobre Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/dto"
)

const (
	headerCompanyID = "X-Company-ID"
	headerUserID    = "X-User-ID"

	localCompanyID = "company_id"
	localUserID    = "user_id"
)

// TenantMiddleware extrae la identidad que inyecta el gateway de autenticación
// (X-Company-ID y X-User-ID) y la deja en el contexto de la petición. Ambos
// encabezados son obligatorios: toda la API es multi-tenant y cada escritura
// queda atribuida a un usuario.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Get(headerCompanyID)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "falta el encabezado " + headerCompanyID,
			})
		}
		userID := c.Get(headerUserID)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "falta el encabezado " + headerUserID,
			})
		}
		c.Locals(localCompanyID, companyID)
		c.Locals(localUserID, userID)
		return c.Next()
	}
}

// GetCompanyID devuelve la empresa de la petición ("" si no hay).
func GetCompanyID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localCompanyID).(string); ok {
		return v
	}
	return ""
}

// GetUserID devuelve el usuario de la petición ("" si no hay).
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}
