package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/application/dto"
)

// AuditHandler maneja las peticiones HTTP de las campañas de auditoría.
type AuditHandler struct {
	uc *counting.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *counting.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Create godoc
// @Summary      Crear auditoría de inventario
// @Tags         audits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAuditRequest  true  "Auditoría"
// @Success      201  {object}  dto.AuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAuditRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	audit, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAuditResponse(audit))
}

// Update godoc
// @Summary      Actualizar auditoría
// @Description  Solo se admite mientras la auditoría está en planned o in_progress.
// @Tags         audits
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la auditoría"
// @Param        body  body  dto.UpdateAuditRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.AuditResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [put]
func (h *AuditHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAuditRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	audit, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditResponse(audit))
}

// List godoc
// @Summary      Listar auditorías
// @Tags         audits
// @Produce      json
// @Success      200  {array}  dto.AuditResponse
// @Router       /api/audits [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.AuditResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAuditResponse(a))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener auditoría
// @Tags         audits
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	audit, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if audit == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "auditoría no encontrada"})
	}
	return c.JSON(dto.ToAuditResponse(audit))
}

// Delete godoc
// @Summary      Borrar auditoría
// @Description  Solo se admite mientras la auditoría sigue en planned.
// @Tags         audits
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [delete]
func (h *AuditHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
