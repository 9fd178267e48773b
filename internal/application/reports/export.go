package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// utf8BOM al frente del archivo para que Excel abra el CSV como UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV escribe un CSV con BOM UTF-8 y punto y coma como separador,
// el formato que las planillas regionales esperan.
func WriteCSV(w io.Writer, header []string, records [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("escribir BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("escribir fila: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// StockVsCountCSV arma encabezado y filas del reporte stock vs. conteo.
func StockVsCountCSV(rows []dto.StockVsCountRow) ([]string, [][]string) {
	header := []string{"Código", "Producto", "Contado", "Teórico", "Diferencia", "% Diferencia", "Discrepancia"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.ProductCode,
			r.ProductName,
			r.Counted.String(),
			r.Theoretical.String(),
			r.Difference.String(),
			r.PercentageDiff.StringFixed(2),
			boolMark(r.HasDiscrepancy),
		})
	}
	return header, records
}

// CountVsCountCSV arma encabezado y filas del reporte conteo vs. conteo.
func CountVsCountCSV(result *dto.CountVsCountResult) ([]string, [][]string) {
	header := []string{"Código", "Producto", "Conteo 1", "Conteo 2", "Diferencia", "% Diferencia", "Solo en conteo 1", "Solo en conteo 2"}
	records := make([][]string, 0, len(result.Rows))
	for _, r := range result.Rows {
		records = append(records, []string{
			r.ProductCode,
			r.ProductName,
			r.Qty1.String(),
			r.Qty2.String(),
			r.Difference.String(),
			r.PercentageDiff.StringFixed(2),
			boolMark(r.OnlyInCount1),
			boolMark(r.OnlyInCount2),
		})
	}
	return header, records
}

// MissingProductsCSV arma encabezado y filas del reporte de productos faltantes.
func MissingProductsCSV(rows []dto.MissingProductRow) ([]string, [][]string) {
	header := []string{"Código", "Barcode", "Producto", "Unidad"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Code, r.Barcode, r.Name, r.Unit})
	}
	return header, records
}

// MovementsCSV arma encabezado y filas del export del libro de movimientos.
func MovementsCSV(movements []*entity.Movement) ([]string, [][]string) {
	header := []string{"Código", "Fecha", "Tipo", "Producto", "Cantidad", "Costo unitario", "Costo total", "Área", "Área origen", "Área destino", "Referencia"}
	records := make([][]string, 0, len(movements))
	for _, m := range movements {
		records = append(records, []string{
			m.Code,
			m.MovementDate.Format("2006-01-02 15:04:05"),
			m.Type,
			m.ProductID,
			m.Quantity.String(),
			decimalOrEmpty(m.UnitCost),
			decimalOrEmpty(m.TotalCost),
			stringOrEmpty(m.AreaID),
			stringOrEmpty(m.FromAreaID),
			stringOrEmpty(m.ToAreaID),
			m.ReferenceID,
		})
	}
	return header, records
}

func boolMark(b bool) string {
	return strconv.FormatBool(b)
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
