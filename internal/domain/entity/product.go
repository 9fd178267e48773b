package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (multi-área, multi-empresa).
// Code es único por empresa; Barcode es la llave con la que los conteos
// físicos y las importaciones masivas lo identifican.
type Product struct {
	ID          string
	CompanyID   string
	Code        string // código único por empresa
	Barcode     string
	Name        string
	Description string
	Unit        string          // unidad de medida (UND, KG, LT, ...)
	MinStock    decimal.Decimal // umbral de alerta de stock bajo
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
