// Package inventory contiene los servicios de dominio del libro de inventario:
// las reglas de signo que conectan cada movimiento con el agregado que afecta.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// SignedQuantity devuelve la contribución con signo de un movimiento sobre su
// agregado objetivo. La cantidad del movimiento es una magnitud (> 0):
//
//	entry, adjustment, transfer_in  -> +|quantity|
//	exit, transfer_out              -> -|quantity|
func SignedQuantity(movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	q := quantity.Abs()
	switch movementType {
	case entity.MovementTypeEntry, entity.MovementTypeAdjustment, entity.MovementTypeTransferIn:
		return q, nil
	case entity.MovementTypeExit, entity.MovementTypeTransferOut:
		return q.Neg(), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// TargetArea devuelve el área cuyo agregado afecta el movimiento. Cada asiento
// afecta exactamente un agregado: las patas de traslado reparten el efecto
// (transfer_out resta en el área origen, transfer_in suma en el área destino),
// así el total entre áreas queda invariante y no hay doble conteo.
func TargetArea(m *entity.Movement) *string {
	switch m.Type {
	case entity.MovementTypeTransferOut:
		return m.FromAreaID
	case entity.MovementTypeTransferIn:
		return m.ToAreaID
	}
	return m.AreaID
}

// Contribution devuelve la contribución con signo del movimiento m al agregado
// del área areaID (nil = fila sin área). Cero si el movimiento no la afecta.
// Es la función que la reconstrucción total suma sobre los asientos sobrevivientes.
func Contribution(m *entity.Movement, areaID *string) decimal.Decimal {
	if !sameArea(TargetArea(m), areaID) {
		return decimal.Zero
	}
	signed, err := SignedQuantity(m.Type, m.Quantity)
	if err != nil {
		return decimal.Zero
	}
	return signed
}

func sameArea(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
