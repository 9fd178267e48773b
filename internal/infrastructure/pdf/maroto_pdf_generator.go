// Package pdf implementa la versión imprimible del reporte de conciliación
// stock vs. conteo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Contado | Teórico | Dif | %      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems evaluados / con discrepancia                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Chirlanio/inmystock/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera reportes de conciliación en PDF usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockVsCountPDF genera el PDF del reporte stock vs. conteo y
// devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockVsCountPDF(title string, rows []dto.StockVsCountRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conciliación.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Contado", 2, align.Right),
		h("Teórico", 2, align.Right),
		h("Diferencia", 1, align.Right),
		h("%", 1, align.Right),
	)
}

// tableRows: una fila por producto; las discrepancias van en rojo.
func tableRows(rows []dto.StockVsCountRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		diffColor := colorGray
		if r.HasDiscrepancy {
			diffColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(r.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Counted.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(r.Theoretical.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(r.Difference.String(), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: diffColor,
			})),
			col.New(1).Add(text.New(r.PercentageDiff.StringFixed(1), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: diffColor,
			})),
		))
	}
	return result
}

// summaryRow: totales del reporte.
func summaryRow(rows []dto.StockVsCountRow) core.Row {
	discrepancies := 0
	for _, r := range rows {
		if r.HasDiscrepancy {
			discrepancies++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Ítems evaluados: %d   |   Con discrepancia: %d", len(rows), discrepancies), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
