package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel es el agregado derivado de stock por (empresa, producto, área).
// Se crea con el primer movimiento que toca el par, se incrementa con cada
// movimiento nuevo y se reconstruye sumando los movimientos sobrevivientes
// cuando se borra un asiento. AreaID nil representa la fila sintética "sin área".
type InventoryLevel struct {
	ID                string
	CompanyID         string
	ProductID         string
	AreaID            *string
	Quantity          decimal.Decimal // saldo corrido con signo
	ReservedQuantity  decimal.Decimal
	AvailableQuantity decimal.Decimal // siempre Quantity - ReservedQuantity
	LastMovementAt    *time.Time
	UpdatedAt         time.Time
}

// Recalculate vuelve a derivar AvailableQuantity; debe invocarse tras cada
// cambio de Quantity o ReservedQuantity para que nunca quede obsoleta.
func (l *InventoryLevel) Recalculate() {
	l.AvailableQuantity = l.Quantity.Sub(l.ReservedQuantity)
}

// Reserve aparta qty del disponible. Falla sin mutar si qty excede el disponible.
func (l *InventoryLevel) Reserve(qty decimal.Decimal) bool {
	if qty.LessThanOrEqual(decimal.Zero) || qty.GreaterThan(l.AvailableQuantity) {
		return false
	}
	l.ReservedQuantity = l.ReservedQuantity.Add(qty)
	l.Recalculate()
	return true
}

// Release libera qty de lo reservado. Falla sin mutar si qty excede lo reservado.
func (l *InventoryLevel) Release(qty decimal.Decimal) bool {
	if qty.LessThanOrEqual(decimal.Zero) || qty.GreaterThan(l.ReservedQuantity) {
		return false
	}
	l.ReservedQuantity = l.ReservedQuantity.Sub(qty)
	l.Recalculate()
	return true
}
