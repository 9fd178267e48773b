package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Producto"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	p, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(p))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProductResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}
