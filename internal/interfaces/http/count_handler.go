package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/application/dto"
)

// CountHandler maneja las peticiones HTTP de las sesiones de conteo y sus ítems.
type CountHandler struct {
	uc *counting.CountUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *counting.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sesión de conteo
// @Description  Abre un conteo dentro de una auditoría editable. El consecutivo
//               count_number es único por (auditoría, área).
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la auditoría"
// @Param        body  body  dto.CreateCountRequest  true  "Conteo"
// @Success      201  {object}  dto.CountResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/counts [post]
func (h *CountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	count, err := h.uc.Create(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCountResponse(count))
}

// ListByAudit godoc
// @Summary      Listar conteos de una auditoría
// @Tags         counts
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {array}  dto.CountResponse
// @Router       /api/audits/{id}/counts [get]
func (h *CountHandler) ListByAudit(c *fiber.Ctx) error {
	list, err := h.uc.ListByAudit(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.CountResponse, 0, len(list))
	for _, count := range list {
		out = append(out, dto.ToCountResponse(count))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener conteo
// @Tags         counts
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [get]
func (h *CountHandler) GetByID(c *fiber.Ctx) error {
	count, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if count == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conteo no encontrado"})
	}
	return c.JSON(dto.ToCountResponse(count))
}

// Start godoc
// @Summary      Iniciar conteo
// @Description  Transición pending -> in_progress; estampa started_at.
// @Tags         counts
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CountResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/start [post]
func (h *CountHandler) Start(c *fiber.Ctx) error {
	count, err := h.uc.Start(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCountResponse(count))
}

// Complete godoc
// @Summary      Completar conteo
// @Description  Cierra el conteo; exige al menos un ítem registrado.
// @Tags         counts
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CountResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/complete [post]
func (h *CountHandler) Complete(c *fiber.Ctx) error {
	count, err := h.uc.Complete(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCountResponse(count))
}

// ReplaceItems godoc
// @Summary      Reemplazar ítems del conteo
// @Description  Borra los ítems actuales e inserta la lista recibida tal cual.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del conteo"
// @Param        body  body  dto.ReplaceItemsRequest  true  "Lista completa de ítems"
// @Success      200  {array}   dto.CountItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/items [put]
func (h *CountHandler) ReplaceItems(c *fiber.Ctx) error {
	var in dto.ReplaceItemsRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	items, err := h.uc.ReplaceItems(c.Context(), GetCompanyID(c), c.Params("id"), in.Items)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CountItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToCountItemResponse(it))
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar ítems del conteo
// @Tags         counts
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {array}  dto.CountItemResponse
// @Router       /api/counts/{id}/items [get]
func (h *CountHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CountItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToCountItemResponse(it))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar conteo
// @Description  Nunca se borra un conteo completado.
// @Tags         counts
// @Param        id  path  string  true  "ID del conteo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [delete]
func (h *CountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
