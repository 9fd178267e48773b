package reports_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/application/reports"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// Los CSV van con BOM UTF-8 y punto y coma: es lo que Excel en locales es-*
// espera para abrir el archivo sin asistente de importación.

func TestWriteCSV_BOMYPuntoYComa(t *testing.T) {
	var buf bytes.Buffer
	err := reports.WriteCSV(&buf,
		[]string{"Código", "Cantidad"},
		[][]string{{"P-001", "10"}, {"P-002", "2.5"}},
	)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "el archivo abre con BOM UTF-8")

	body := string(out[3:])
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Código;Cantidad", lines[0])
	assert.Equal(t, "P-001;10", lines[1])
	assert.Equal(t, "P-002;2.5", lines[2])
}

func TestStockVsCountCSV(t *testing.T) {
	header, records := reports.StockVsCountCSV([]dto.StockVsCountRow{
		{
			ProductCode:    "P-001",
			ProductName:    "Café 500g",
			Counted:        decimal.NewFromInt(8),
			Theoretical:    decimal.NewFromInt(10),
			Difference:     decimal.NewFromInt(-2),
			PercentageDiff: decimal.NewFromInt(-20),
			HasDiscrepancy: true,
		},
	})

	assert.Equal(t, []string{"Código", "Producto", "Contado", "Teórico", "Diferencia", "% Diferencia", "Discrepancia"}, header)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"P-001", "Café 500g", "8", "10", "-2", "-20.00", "true"}, records[0])
}

func TestCountVsCountCSV(t *testing.T) {
	header, records := reports.CountVsCountCSV(&dto.CountVsCountResult{
		Rows: []dto.CountVsCountRow{
			{
				ProductCode:  "P-002",
				ProductName:  "Azúcar 1kg",
				Qty1:         decimal.NewFromInt(5),
				Qty2:         decimal.Zero,
				Difference:   decimal.NewFromInt(-5),
				OnlyInCount1: true,
			},
		},
	})

	require.Len(t, header, 8)
	require.Len(t, records, 1)
	assert.Equal(t, "true", records[0][6], "el exclusivo del conteo 1 queda marcado")
	assert.Equal(t, "false", records[0][7])
}

func TestMovementsCSV_CamposOpcionalesVacios(t *testing.T) {
	area := "area-1"
	cost := decimal.NewFromFloat(2.5)
	total := decimal.NewFromInt(25)
	when := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	header, records := reports.MovementsCSV([]*entity.Movement{
		{
			Code: "MOV-20260831-0001", Type: entity.MovementTypeEntry, ProductID: "p1",
			Quantity: decimal.NewFromInt(10), UnitCost: &cost, TotalCost: &total,
			AreaID: &area, MovementDate: when,
		},
		{
			Code: "MOV-20260831-0002", Type: entity.MovementTypeExit, ProductID: "p1",
			Quantity: decimal.NewFromInt(3), MovementDate: when, AreaID: &area,
		},
	})

	require.Len(t, header, 11)
	require.Len(t, records, 2)

	assert.Equal(t, "2026-08-31 14:30:00", records[0][1])
	assert.Equal(t, "2.5", records[0][5])
	assert.Equal(t, "25", records[0][6])

	assert.Empty(t, records[1][5], "sin costo unitario la celda va vacía, no en cero")
	assert.Empty(t, records[1][6])
	assert.Empty(t, records[1][8], "las áreas de traslado van vacías en movimientos simples")
	assert.Empty(t, records[1][9])
}
