package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/application/usecase"
)

// AreaHandler maneja las peticiones HTTP del catálogo de áreas.
type AreaHandler struct {
	uc *usecase.AreaUseCase
}

// NewAreaHandler construye el handler.
func NewAreaHandler(uc *usecase.AreaUseCase) *AreaHandler {
	return &AreaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear área
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAreaRequest  true  "Área"
// @Success      201  {object}  dto.AreaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAreaRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	a, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAreaResponse(a))
}

// List godoc
// @Summary      Listar áreas
// @Tags         areas
// @Produce      json
// @Success      200  {array}  dto.AreaResponse
// @Router       /api/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.AreaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAreaResponse(a))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener área
// @Tags         areas
// @Produce      json
// @Param        id  path  string  true  "ID del área"
// @Success      200  {object}  dto.AreaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [get]
func (h *AreaHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAreaResponse(a))
}
