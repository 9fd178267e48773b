package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/application/inventory"
	"github.com/Chirlanio/inmystock/internal/application/reports"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos y los
// niveles derivados.
type MovementHandler struct {
	record      *inventory.RecordMovementUseCase
	remove      *inventory.DeleteMovementUseCase
	query       *inventory.MovementQueryUseCase
	reservation *inventory.ReservationUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	record *inventory.RecordMovementUseCase,
	remove *inventory.DeleteMovementUseCase,
	query *inventory.MovementQueryUseCase,
	reservation *inventory.ReservationUseCase,
) *MovementHandler {
	return &MovementHandler{record: record, remove: remove, query: query, reservation: reservation}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Description  entry/exit/adjustment requieren area_id; transfer_out requiere
//               from_area_id y to_area_id distintos y crea las dos patas.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	created, err := h.record.Record(c.Context(), inventory.MovementInput{
		CompanyID:    GetCompanyID(c),
		UserID:       GetUserID(c),
		ProductID:    in.ProductID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		AreaID:       in.AreaID,
		FromAreaID:   in.FromAreaID,
		ToAreaID:     in.ToAreaID,
		UnitCost:     in.UnitCost,
		MovementDate: in.MovementDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(created))
	for _, m := range created {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        area_id     query  string  false  "Filtrar por área (cualquier pata que la toque)"
// @Param        type        query  string  false  "Filtrar por tipo"
// @Param        from        query  string  false  "Fecha mínima (RFC3339)"
// @Param        to          query  string  false  "Fecha máxima (RFC3339)"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.query.List(c.Context(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un movimiento
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.query.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if mov == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// Delete godoc
// @Summary      Borrar un movimiento
// @Description  Borrado lógico. Si el movimiento es pata de un traslado se
//               borra también su pata emparejada y se reconstruyen los
//               agregados de ambas áreas.
// @Tags         inventory
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.remove.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tope de filas por exportación. Si un rango de fechas lo supera, el cliente
// debe acotar los filtros; la respuesta lo anuncia vía X-Export-Row-Limit y
// marca X-Export-Truncated cuando el tope se alcanzó.
const exportRowLimit = 10000

// Export godoc
// @Summary      Exportar movimientos a CSV
// @Description  CSV con BOM UTF-8 y separador punto y coma, mismos filtros que
//               el listado. La exportación se limita a 10000 filas: el tope se
//               publica en X-Export-Row-Limit y X-Export-Truncated vale "true"
//               cuando se alcanzó.
// @Tags         inventory
// @Produce      text/csv
// @Router       /api/inventory/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	f.Limit = exportRowLimit
	f.Offset = 0
	list, err := h.query.List(c.Context(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("X-Export-Row-Limit", strconv.Itoa(exportRowLimit))
	if len(list) == exportRowLimit {
		c.Set("X-Export-Truncated", "true")
	}

	header, records := reports.MovementsCSV(list)
	return sendCSV(c, "movimientos.csv", header, records)
}

// Levels godoc
// @Summary      Niveles de stock de un producto
// @Description  Saldo derivado por área más la alerta de stock bajo contra min_stock.
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/levels [get]
func (h *MovementHandler) Levels(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	levels, err := h.reservation.ListLevels(c.Context(), companyID, productID)
	if err != nil {
		return respondError(c, err)
	}
	lowStock, err := h.reservation.IsLowStock(c.Context(), companyID, productID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.ToInventoryLevelResponse(l))
	}
	return c.JSON(fiber.Map{"levels": out, "low_stock": lowStock})
}

// Reserve godoc
// @Summary      Reservar stock
// @Tags         inventory
// @Accept       json
// @Param        body  body  dto.ReservationRequest  true  "Reserva"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *MovementHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.reservation.Reserve(c.Context(), GetCompanyID(c), in.ProductID, in.AreaID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar stock reservado
// @Tags         inventory
// @Accept       json
// @Param        body  body  dto.ReservationRequest  true  "Liberación"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations/release [post]
func (h *MovementHandler) Release(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.reservation.Release(c.Context(), GetCompanyID(c), in.ProductID, in.AreaID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	f := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if v := c.Query("area_id"); v != "" {
		f.AreaID = &v
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errInvalidDate
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errInvalidDate
		}
		f.To = &t
	}
	return f, nil
}
