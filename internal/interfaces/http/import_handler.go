package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// ImportHandler maneja la importación masiva de archivos de conteo.
type ImportHandler struct {
	uc           *counting.ImportUseCase
	maxFileBytes int64
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *counting.ImportUseCase, maxFileBytes int64) *ImportHandler {
	return &ImportHandler{uc: uc, maxFileBytes: maxFileBytes}
}

// Import godoc
// @Summary      Importar archivo de conteo
// @Description  Multipart: campo "file" con el archivo, "format"
//               (barcode_only | barcode_quantity) y "delimiter" opcional
//               (coma por defecto). Las líneas repetidas de un mismo barcode
//               se acumulan; todo el lote corre en una transacción.
// @Tags         counts
// @Accept       multipart/form-data
// @Produce      json
// @Param        id         path      string  true   "ID del conteo"
// @Param        file       formData  file    true   "Archivo de conteo"
// @Param        format     formData  string  true   "barcode_only | barcode_quantity"
// @Param        delimiter  formData  string  false  "Separador de columnas"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo (campo file)"})
	}
	if h.maxFileBytes > 0 && fileHeader.Size > h.maxFileBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo excede el tamaño máximo permitido"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	format := c.FormValue("format", entity.ImportFormatBarcodeOnly)
	delimiter := c.FormValue("delimiter", ",")

	imp, err := h.uc.Import(c.Context(), counting.ImportInput{
		CompanyID:    GetCompanyID(c),
		UserID:       GetUserID(c),
		StockCountID: c.Params("id"),
		FileName:     fileHeader.Filename,
		Content:      content,
		Format:       format,
		Delimiter:    delimiter,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToImportResponse(imp))
}

// ListByCount godoc
// @Summary      Listar importaciones de un conteo
// @Tags         counts
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {array}  dto.ImportResponse
// @Router       /api/counts/{id}/imports [get]
func (h *ImportHandler) ListByCount(c *fiber.Ctx) error {
	list, err := h.uc.ListByCount(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.ImportResponse, 0, len(list))
	for _, imp := range list {
		out = append(out, dto.ToImportResponse(imp))
	}
	return c.JSON(out)
}
