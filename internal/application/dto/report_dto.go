package dto

import "github.com/shopspring/decimal"

// StockVsCountRow una fila del reporte stock teórico vs. contado.
// El orden de campos es el orden estable de columnas de los exports.
type StockVsCountRow struct {
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Counted        decimal.Decimal `json:"counted"`
	Theoretical    decimal.Decimal `json:"theoretical"`
	Difference     decimal.Decimal `json:"difference"`      // counted - theoretical
	PercentageDiff decimal.Decimal `json:"percentage_diff"` // ver fórmula en reports
	HasDiscrepancy bool            `json:"has_discrepancy"`
}

// CountVsCountRow una fila del reporte conteo vs. conteo (count1 es la línea base).
type CountVsCountRow struct {
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Qty1           decimal.Decimal `json:"qty1"`
	Qty2           decimal.Decimal `json:"qty2"`
	Difference     decimal.Decimal `json:"difference"` // qty2 - qty1
	PercentageDiff decimal.Decimal `json:"percentage_diff"`
	OnlyInCount1   bool            `json:"only_in_count_1"`
	OnlyInCount2   bool            `json:"only_in_count_2"`
	HasDiscrepancy bool            `json:"has_discrepancy"`
}

// CountVsCountResult reporte completo con los buckets de códigos exclusivos.
type CountVsCountResult struct {
	Rows         []CountVsCountRow `json:"rows"`
	OnlyInCount1 []string          `json:"only_in_count_1"`
	OnlyInCount2 []string          `json:"only_in_count_2"`
}

// MissingProductRow un producto activo jamás contado en el conteo consultado.
type MissingProductRow struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Barcode   string `json:"barcode,omitempty"`
	Name      string `json:"name"`
	Unit      string `json:"unit,omitempty"`
}
