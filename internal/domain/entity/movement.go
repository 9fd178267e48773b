package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry       = "entry"        // entrada
	MovementTypeExit        = "exit"         // salida
	MovementTypeAdjustment  = "adjustment"   // ajuste
	MovementTypeTransferOut = "transfer_out" // traslado, pata de salida
	MovementTypeTransferIn  = "transfer_in"  // traslado, pata de entrada
)

// ReferenceTypeMovement tipo de referencia polimórfica usado para enlazar
// la pata transfer_in con su transfer_out de origen.
const ReferenceTypeMovement = "movement"

// Movement es un asiento inmutable del libro de inventario: un único cambio de
// cantidad de un producto. Quantity siempre guarda la magnitud (> 0); el signo
// lo determina el tipo. Soporta borrado lógico (DeletedAt); al borrar se
// recalcula el agregado afectado desde los asientos sobrevivientes.
type Movement struct {
	ID            string
	CompanyID     string
	Code          string // MOV-YYYYMMDD-NNNN, único por empresa
	ProductID     string
	Type          string
	Quantity      decimal.Decimal // magnitud, siempre positiva
	UnitCost      *decimal.Decimal
	TotalCost     *decimal.Decimal // |Quantity| * UnitCost si no se indicó
	AreaID        *string          // nil en patas de traslado
	FromAreaID    *string          // solo traslados
	ToAreaID      *string          // solo traslados
	ReferenceType string           // enlace polimórfico (ej. "movement")
	ReferenceID   string
	MovementDate  time.Time
	UserID        string
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// IsTransferLeg indica si el movimiento es una de las dos patas de un traslado.
func (m *Movement) IsTransferLeg() bool {
	return m.Type == MovementTypeTransferOut || m.Type == MovementTypeTransferIn
}

// ValidMovementType valida el tipo contra el catálogo.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment,
		MovementTypeTransferOut, MovementTypeTransferIn:
		return true
	}
	return false
}
