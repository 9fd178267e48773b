// Package counting contiene la lógica de dominio de los conteos físicos:
// el parser de archivos de importación y la acumulación por barcode.
package counting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// ParseResult es el resultado de parsear un archivo de conteo completo.
// Totals acumula la cantidad por barcode (líneas repetidas suman); Order
// conserva el orden de primera aparición para aplicar los ítems de forma
// determinista. Los contadores y errores alimentan el registro de importación.
type ParseResult struct {
	Totals          map[string]decimal.Decimal
	Order           []string
	TotalLines      int
	ProcessedLines  int
	SuccessfulLines int
	FailedLines     int
	Errors          []entity.ImportError
}

// ParseFile procesa el contenido de un archivo de conteo línea por línea.
//
//   - barcode_only: cada línea no vacía es un barcode y aporta cantidad 1.
//   - barcode_quantity: cada línea se divide por delimiter en >= 2 campos;
//     campo 0 = barcode (recortado), campo 1 = cantidad (decimal, acepta coma
//     como separador decimal, debe ser > 0). Campos extra se ignoran.
//
// Las líneas vacías tras recortar se saltan en silencio (no cuentan como
// procesadas). Un fallo de parseo registra un error con número de línea,
// contenido crudo y mensaje, y el lote continúa.
func ParseFile(content, format, delimiter string) (*ParseResult, error) {
	if !entity.ValidImportFormat(format) {
		return nil, fmt.Errorf("formato de importación desconocido: %q", format)
	}
	if format == entity.ImportFormatBarcodeQuantity && delimiter == "" {
		return nil, fmt.Errorf("formato %s requiere delimitador", format)
	}

	res := &ParseResult{Totals: make(map[string]decimal.Decimal)}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		res.TotalLines++
		res.ProcessedLines++

		barcode, qty, err := parseLine(trimmed, format, delimiter)
		if err != nil {
			res.FailedLines++
			res.Errors = append(res.Errors, entity.ImportError{
				Line:    lineNo,
				Content: raw,
				Message: err.Error(),
			})
			continue
		}
		res.SuccessfulLines++
		res.accumulate(barcode, qty)
	}
	return res, nil
}

func (r *ParseResult) accumulate(barcode string, qty decimal.Decimal) {
	if _, seen := r.Totals[barcode]; !seen {
		r.Order = append(r.Order, barcode)
	}
	r.Totals[barcode] = r.Totals[barcode].Add(qty)
}

func parseLine(line, format, delimiter string) (string, decimal.Decimal, error) {
	if format == entity.ImportFormatBarcodeOnly {
		return line, decimal.NewFromInt(1), nil
	}

	fields := strings.Split(line, delimiter)
	if len(fields) < 2 {
		return "", decimal.Zero, fmt.Errorf("se esperaban al menos 2 campos separados por %q", delimiter)
	}
	barcode := strings.TrimSpace(fields[0])
	if barcode == "" {
		return "", decimal.Zero, fmt.Errorf("barcode vacío")
	}
	qty, err := ParseQuantity(fields[1])
	if err != nil {
		return "", decimal.Zero, err
	}
	return barcode, qty, nil
}

// ParseQuantity parsea una cantidad de conteo. Acepta coma como separador
// decimal (formato de los lectores configurados en locales es-*) y exige > 0.
func ParseQuantity(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	qty, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cantidad inválida: %q", strings.TrimSpace(s))
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("la cantidad debe ser mayor que cero: %s", qty)
	}
	return qty, nil
}
