package inventory

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el asiento del movimiento y la
// actualización del agregado nunca se observen divergentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error) error
}
