package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para entry/exit/adjustment: area_id requerido. Para transfer_out:
// from_area_id y to_area_id requeridos y distintos (se crean las dos patas).
type RegisterMovementRequest struct {
	ProductID    string           `json:"product_id" validate:"required"`
	Type         string           `json:"type" validate:"required,oneof=entry exit adjustment transfer_out"`
	Quantity     decimal.Decimal  `json:"quantity"`
	AreaID       *string          `json:"area_id,omitempty"`
	FromAreaID   *string          `json:"from_area_id,omitempty"`
	ToAreaID     *string          `json:"to_area_id,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	MovementDate *time.Time       `json:"movement_date,omitempty"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	ProductID     string           `json:"product_id"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost     *decimal.Decimal `json:"total_cost,omitempty"`
	AreaID        *string          `json:"area_id,omitempty"`
	FromAreaID    *string          `json:"from_area_id,omitempty"`
	ToAreaID      *string          `json:"to_area_id,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	MovementDate  time.Time        `json:"movement_date"`
	UserID        string           `json:"user_id"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ToMovementResponse convierte la entidad a su DTO de respuesta.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		Code:          m.Code,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		AreaID:        m.AreaID,
		FromAreaID:    m.FromAreaID,
		ToAreaID:      m.ToAreaID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		MovementDate:  m.MovementDate,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}

// InventoryLevelResponse saldo derivado por (producto, área).
type InventoryLevelResponse struct {
	ProductID         string          `json:"product_id"`
	AreaID            *string         `json:"area_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	LastMovementAt    *time.Time      `json:"last_movement_at,omitempty"`
}

// ToInventoryLevelResponse convierte la entidad a su DTO de respuesta.
func ToInventoryLevelResponse(l *entity.InventoryLevel) InventoryLevelResponse {
	return InventoryLevelResponse{
		ProductID:         l.ProductID,
		AreaID:            l.AreaID,
		Quantity:          l.Quantity,
		ReservedQuantity:  l.ReservedQuantity,
		AvailableQuantity: l.AvailableQuantity,
		LastMovementAt:    l.LastMovementAt,
	}
}

// ReservationRequest body para reservar o liberar stock de un nivel.
type ReservationRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	AreaID    *string         `json:"area_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}
