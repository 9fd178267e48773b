package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// CreateAuditRequest body para POST /api/audits.
type CreateAuditRequest struct {
	Name           string     `json:"name" validate:"required,max=255"`
	Description    string     `json:"description" validate:"omitempty,max=1000"`
	RequiredCounts int        `json:"required_counts" validate:"required,min=1,max=10"`
	ResponsibleID  string     `json:"responsible_id" validate:"required"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// UpdateAuditRequest body para PUT /api/audits/:id (solo editable en planned/in_progress).
type UpdateAuditRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=planned in_progress completed cancelled"`
	RequiredCounts *int       `json:"required_counts,omitempty" validate:"omitempty,min=1,max=10"`
	ResponsibleID  *string    `json:"responsible_id,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// AuditResponse representación de una auditoría en respuestas.
type AuditResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	RequiredCounts int        `json:"required_counts"`
	ResponsibleID  string     `json:"responsible_id"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToAuditResponse convierte la entidad a su DTO de respuesta.
func ToAuditResponse(a *entity.StockAudit) *AuditResponse {
	return &AuditResponse{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		Status:         a.Status,
		RequiredCounts: a.RequiredCounts,
		ResponsibleID:  a.ResponsibleID,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		CreatedAt:      a.CreatedAt,
	}
}

// CreateCountRequest body para POST /api/audits/:id/counts.
type CreateCountRequest struct {
	AreaID      *string `json:"area_id,omitempty"`
	CounterID   string  `json:"counter_id" validate:"required"`
	CountNumber int     `json:"count_number" validate:"required,min=1"`
	Notes       string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CountResponse representación de una sesión de conteo.
type CountResponse struct {
	ID          string     `json:"id"`
	AuditID     string     `json:"audit_id"`
	AreaID      *string    `json:"area_id,omitempty"`
	CounterID   string     `json:"counter_id"`
	CountNumber int        `json:"count_number"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ToCountResponse convierte la entidad a su DTO de respuesta.
func ToCountResponse(c *entity.StockCount) *CountResponse {
	return &CountResponse{
		ID:          c.ID,
		AuditID:     c.AuditID,
		AreaID:      c.AreaID,
		CounterID:   c.CounterID,
		CountNumber: c.CountNumber,
		Status:      c.Status,
		StartedAt:   c.StartedAt,
		CompletedAt: c.CompletedAt,
		Notes:       c.Notes,
	}
}

// CountItemInput una línea de conteo en PUT /api/counts/:id/items.
// La lista reemplaza por completo los ítems actuales (borrar y recrear).
type CountItemInput struct {
	ProductCode     string          `json:"product_code" validate:"required,max=100"`
	ProductName     string          `json:"product_name" validate:"omitempty,max=255"`
	QuantityCounted decimal.Decimal `json:"quantity_counted"`
	Unit            string          `json:"unit,omitempty" validate:"omitempty,max=20"`
	Location        string          `json:"location,omitempty" validate:"omitempty,max=255"`
}

// ReplaceItemsRequest body para PUT /api/counts/:id/items.
type ReplaceItemsRequest struct {
	Items []CountItemInput `json:"items" validate:"required,dive"`
}

// CountItemResponse una línea de conteo en respuestas.
type CountItemResponse struct {
	ID              string          `json:"id"`
	ProductCode     string          `json:"product_code"`
	ProductName     string          `json:"product_name,omitempty"`
	QuantityCounted decimal.Decimal `json:"quantity_counted"`
	Unit            string          `json:"unit,omitempty"`
	Location        string          `json:"location,omitempty"`
}

// ToCountItemResponse convierte la entidad a su DTO de respuesta.
func ToCountItemResponse(it *entity.StockCountItem) CountItemResponse {
	return CountItemResponse{
		ID:              it.ID,
		ProductCode:     it.ProductCode,
		ProductName:     it.ProductName,
		QuantityCounted: it.QuantityCounted,
		Unit:            it.Unit,
		Location:        it.Location,
	}
}

// ImportResponse resultado de una importación masiva.
type ImportResponse struct {
	ID              string               `json:"id"`
	StockCountID    string               `json:"stock_count_id"`
	FileName        string               `json:"file_name"`
	FileFormat      string               `json:"file_format"`
	Status          string               `json:"status"`
	TotalLines      int                  `json:"total_lines"`
	ProcessedLines  int                  `json:"processed_lines"`
	SuccessfulLines int                  `json:"successful_lines"`
	FailedLines     int                  `json:"failed_lines"`
	Errors          []entity.ImportError `json:"errors,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	CompletedAt     *time.Time           `json:"completed_at,omitempty"`
}

// ToImportResponse convierte la entidad a su DTO de respuesta.
func ToImportResponse(imp *entity.StockCountImport) *ImportResponse {
	return &ImportResponse{
		ID:              imp.ID,
		StockCountID:    imp.StockCountID,
		FileName:        imp.FileName,
		FileFormat:      imp.FileFormat,
		Status:          imp.Status,
		TotalLines:      imp.TotalLines,
		ProcessedLines:  imp.ProcessedLines,
		SuccessfulLines: imp.SuccessfulLines,
		FailedLines:     imp.FailedLines,
		Errors:          imp.Errors,
		CreatedAt:       imp.CreatedAt,
		CompletedAt:     imp.CompletedAt,
	}
}
