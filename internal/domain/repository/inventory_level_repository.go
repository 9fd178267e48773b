package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// InventoryLevelRepository persistencia del agregado de stock por (empresa, producto, área).
type InventoryLevelRepository interface {
	Get(ctx context.Context, companyID, productID string, areaID *string) (*entity.InventoryLevel, error)
	// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE).
	// Si no existe devuelve un nivel en cero listo para Upsert.
	GetForUpdate(ctx context.Context, companyID, productID string, areaID *string) (*entity.InventoryLevel, error)
	Upsert(ctx context.Context, level *entity.InventoryLevel) error
	// AddDelta aplica un incremento con signo al agregado (firstOrCreate +
	// acumulación atómica) y estampa last_movement_at. available_quantity se
	// rederiva en la misma sentencia.
	AddDelta(ctx context.Context, companyID, productID string, areaID *string, delta decimal.Decimal, at time.Time) error
	// Rebuild sobreescribe el saldo con el resultado de una resumación total.
	Rebuild(ctx context.Context, companyID, productID string, areaID *string, quantity decimal.Decimal, lastMovementAt *time.Time) error
	ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.InventoryLevel, error)
	ListByArea(ctx context.Context, companyID string, areaID *string, limit, offset int) ([]*entity.InventoryLevel, error)
	// TotalByProduct suma el saldo del producto a través de todas las áreas.
	TotalByProduct(ctx context.Context, companyID, productID string) (decimal.Decimal, error)
	// GetByProductCode resuelve el nivel vía el código del producto (cruce de
	// reportes): por área si areaID no es nil, total de áreas si es nil.
	GetByProductCode(ctx context.Context, companyID, productCode string, areaID *string) (decimal.Decimal, error)
}
