package inventory

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movRepo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso con un repositorio atado al pool.
func NewMovementQueryUseCase(movRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// List lista movimientos de la empresa según el filtro.
func (uc *MovementQueryUseCase) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	return uc.movRepo.List(ctx, companyID, f)
}

// GetByID obtiene un movimiento por id dentro de la empresa.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, companyID, id string) (*entity.Movement, error) {
	return uc.movRepo.GetByID(ctx, companyID, id)
}
