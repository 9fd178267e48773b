package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// ReservationUseCase protocolo optimista de reservas sobre una fila de nivel:
// reservar nunca excede el disponible, liberar nunca excede lo reservado y
// available_quantity siempre se rederiva de quantity - reserved_quantity.
type ReservationUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	levelRepo   repository.InventoryLevelRepository
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	levelRepo repository.InventoryLevelRepository,
) *ReservationUseCase {
	return &ReservationUseCase{txRunner: txRunner, productRepo: productRepo, levelRepo: levelRepo}
}

// Reserve aparta qty del disponible del nivel (empresa, producto, área).
// La fila se bloquea (SELECT FOR UPDATE) para que la verificación
// qty <= available y la mutación sean un solo paso atómico.
func (uc *ReservationUseCase) Reserve(ctx context.Context, companyID, productID string, areaID *string, qty decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, companyID, productID, areaID)
		if err != nil {
			return err
		}
		if !level.Reserve(qty) {
			return domain.ErrInsufficientStock
		}
		return levelRepo.Upsert(ctx, level)
	})
}

// Release libera qty de lo reservado en el nivel.
func (uc *ReservationUseCase) Release(ctx context.Context, companyID, productID string, areaID *string, qty decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, companyID, productID, areaID)
		if err != nil {
			return err
		}
		if !level.Release(qty) {
			return domain.ErrInvalidInput
		}
		return levelRepo.Upsert(ctx, level)
	})
}

// IsLowStock indica si el total del producto entre todas las áreas está por
// debajo de su min_stock configurado.
func (uc *ReservationUseCase) IsLowStock(ctx context.Context, companyID, productID string) (bool, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if product == nil || product.CompanyID != companyID {
		return false, domain.ErrNotFound
	}
	total, err := uc.levelRepo.TotalByProduct(ctx, companyID, productID)
	if err != nil {
		return false, err
	}
	return total.LessThan(product.MinStock), nil
}

// ListLevels expone los niveles derivados de un producto (stock teórico por área).
func (uc *ReservationUseCase) ListLevels(ctx context.Context, companyID, productID string) ([]*entity.InventoryLevel, error) {
	return uc.levelRepo.ListByProduct(ctx, companyID, productID)
}
