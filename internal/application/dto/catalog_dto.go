package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	Barcode     string          `json:"barcode" validate:"omitempty,max=100"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Unit        string          `json:"unit" validate:"omitempty,max=20"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Barcode   string          `json:"barcode,omitempty"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToProductResponse convierte la entidad a su DTO de respuesta.
func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Unit:      p.Unit,
		MinStock:  p.MinStock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

// CreateAreaRequest body para POST /api/areas.
type CreateAreaRequest struct {
	Code     string `json:"code" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// AreaResponse representación de un área en respuestas.
type AreaResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Active   bool   `json:"active"`
}

// ToAreaResponse convierte la entidad a su DTO de respuesta.
func ToAreaResponse(a *entity.Area) *AreaResponse {
	return &AreaResponse{
		ID:       a.ID,
		Code:     a.Code,
		Name:     a.Name,
		Location: a.Location,
		Active:   a.Active,
	}
}
