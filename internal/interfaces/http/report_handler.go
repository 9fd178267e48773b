package http

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/application/reports"
	"github.com/Chirlanio/inmystock/internal/infrastructure/pdf"
)

// ReportHandler maneja los reportes de conciliación y sus exports.
type ReportHandler struct {
	uc  *reports.ReconciliationUseCase
	gen *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReconciliationUseCase, gen *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, gen: gen}
}

// StockVsCount godoc
// @Summary      Reporte stock teórico vs. contado
// @Tags         reports
// @Produce      json
// @Param        count_id            query  string  false  "Acotar a un conteo completado"
// @Param        area_id             query  string  false  "Acotar a un área"
// @Param        from                query  string  false  "Conteos completados desde (RFC3339)"
// @Param        to                  query  string  false  "Conteos completados hasta (RFC3339)"
// @Param        only_discrepancies  query  bool    false  "Solo filas con diferencia"
// @Success      200  {array}  dto.StockVsCountRow
// @Router       /api/reports/stock-vs-count [get]
func (h *ReportHandler) StockVsCount(c *fiber.Ctx) error {
	f, err := stockVsCountFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.StockVsCount(c.Context(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// StockVsCountExport godoc
// @Summary      Exportar stock vs. conteo a CSV
// @Tags         reports
// @Produce      text/csv
// @Router       /api/reports/stock-vs-count/export [get]
func (h *ReportHandler) StockVsCountExport(c *fiber.Ctx) error {
	f, err := stockVsCountFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.StockVsCount(c.Context(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	header, records := reports.StockVsCountCSV(rows)
	return sendCSV(c, "stock_vs_conteo.csv", header, records)
}

// StockVsCountPDF godoc
// @Summary      Exportar stock vs. conteo a PDF
// @Tags         reports
// @Produce      application/pdf
// @Router       /api/reports/stock-vs-count/pdf [get]
func (h *ReportHandler) StockVsCountPDF(c *fiber.Ctx) error {
	f, err := stockVsCountFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.StockVsCount(c.Context(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.gen.GenerateStockVsCountPDF("Conciliación de inventario", rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="conciliacion.pdf"`)
	return c.Send(doc)
}

// CountVsCount godoc
// @Summary      Reporte conteo vs. conteo
// @Description  count1_id es la línea base: difference = qty2 - qty1.
// @Tags         reports
// @Produce      json
// @Param        count1_id           query  string  true   "Conteo base"
// @Param        count2_id           query  string  true   "Conteo a comparar"
// @Param        only_discrepancies  query  bool    false  "Solo filas con diferencia"
// @Success      200  {object}  dto.CountVsCountResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/count-vs-count [get]
func (h *ReportHandler) CountVsCount(c *fiber.Ctx) error {
	count1, count2 := c.Query("count1_id"), c.Query("count2_id")
	if count1 == "" || count2 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count1_id y count2_id requeridos"})
	}
	result, err := h.uc.CountVsCount(c.Context(), GetCompanyID(c), count1, count2, c.QueryBool("only_discrepancies"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// CountVsCountExport godoc
// @Summary      Exportar conteo vs. conteo a CSV
// @Tags         reports
// @Produce      text/csv
// @Router       /api/reports/count-vs-count/export [get]
func (h *ReportHandler) CountVsCountExport(c *fiber.Ctx) error {
	count1, count2 := c.Query("count1_id"), c.Query("count2_id")
	if count1 == "" || count2 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count1_id y count2_id requeridos"})
	}
	result, err := h.uc.CountVsCount(c.Context(), GetCompanyID(c), count1, count2, c.QueryBool("only_discrepancies"))
	if err != nil {
		return respondError(c, err)
	}
	header, records := reports.CountVsCountCSV(result)
	return sendCSV(c, "conteo_vs_conteo.csv", header, records)
}

// MissingProducts godoc
// @Summary      Reporte de productos faltantes
// @Description  Productos activos del catálogo cuyos códigos no aparecen en el conteo.
// @Tags         reports
// @Produce      json
// @Param        count_id  query  string  true  "ID del conteo"
// @Success      200  {array}  dto.MissingProductRow
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/missing-products [get]
func (h *ReportHandler) MissingProducts(c *fiber.Ctx) error {
	countID := c.Query("count_id")
	if countID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count_id requerido"})
	}
	rows, err := h.uc.MissingProducts(c.Context(), GetCompanyID(c), countID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// MissingProductsExport godoc
// @Summary      Exportar productos faltantes a CSV
// @Tags         reports
// @Produce      text/csv
// @Router       /api/reports/missing-products/export [get]
func (h *ReportHandler) MissingProductsExport(c *fiber.Ctx) error {
	countID := c.Query("count_id")
	if countID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count_id requerido"})
	}
	rows, err := h.uc.MissingProducts(c.Context(), GetCompanyID(c), countID)
	if err != nil {
		return respondError(c, err)
	}
	header, records := reports.MissingProductsCSV(rows)
	return sendCSV(c, "productos_faltantes.csv", header, records)
}

func stockVsCountFilterFromQuery(c *fiber.Ctx) (reports.StockVsCountFilter, error) {
	f := reports.StockVsCountFilter{
		CountID:           c.Query("count_id"),
		OnlyDiscrepancies: c.QueryBool("only_discrepancies"),
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

func sendCSV(c *fiber.Ctx, fileName string, header []string, records [][]string) error {
	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, header, records); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(buf.Bytes())
}
