package inventory

import (
	"context"
	"time"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// DeleteMovementUseCase borra (lógicamente) un movimiento y reconstruye los
// agregados afectados. No se decrementa incrementalmente: tras borrar un
// asiento histórico arbitrario, la única garantía de que el agregado iguale
// la suma de los asientos sobrevivientes es resumarlos todos.
type DeleteMovementUseCase struct {
	txRunner TxRunner
}

// NewDeleteMovementUseCase construye el caso de uso.
func NewDeleteMovementUseCase(txRunner TxRunner) *DeleteMovementUseCase {
	return &DeleteMovementUseCase{txRunner: txRunner}
}

// Delete borra el movimiento y, si es pata de un traslado, también su pata
// emparejada: un transfer_out sin transfer_in nunca debe ser observable.
// Después reconstruye el agregado de cada área afectada (origen y destino
// para traslados) sumando los asientos sobrevivientes.
func (uc *DeleteMovementUseCase) Delete(ctx context.Context, companyID, movementID string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		mov, err := movRepo.GetByID(ctx, companyID, movementID)
		if err != nil {
			return err
		}
		if mov == nil || mov.DeletedAt != nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if err := movRepo.SoftDelete(ctx, companyID, mov.ID, now); err != nil {
			return err
		}

		if mov.IsTransferLeg() {
			pair, err := movRepo.GetPairedLeg(ctx, companyID, mov)
			if err != nil {
				return err
			}
			if pair != nil && pair.DeletedAt == nil {
				if err := movRepo.SoftDelete(ctx, companyID, pair.ID, now); err != nil {
					return err
				}
			}
		}

		for _, areaID := range affectedAreas(mov) {
			sum, lastAt, err := movRepo.SignedSum(ctx, companyID, mov.ProductID, areaID)
			if err != nil {
				return err
			}
			if err := levelRepo.Rebuild(ctx, companyID, mov.ProductID, areaID, sum, lastAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// affectedAreas devuelve las áreas cuyos agregados deben reconstruirse:
// origen y destino para patas de traslado, el área propia en el resto.
func affectedAreas(m *entity.Movement) []*string {
	if m.IsTransferLeg() {
		return []*string{m.FromAreaID, m.ToAreaID}
	}
	return []*string{m.AreaID}
}
