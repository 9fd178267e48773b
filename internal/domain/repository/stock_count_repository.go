package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// CountItemFilter filtros para leer ítems de conteos en los reportes.
type CountItemFilter struct {
	CountID string
	AreaID  *string
	From    *time.Time
	To      *time.Time
}

// StockCountRepository persistencia de las sesiones de conteo y sus ítems.
type StockCountRepository interface {
	Create(ctx context.Context, c *entity.StockCount) error
	Update(ctx context.Context, c *entity.StockCount) error
	GetByID(ctx context.Context, companyID, id string) (*entity.StockCount, error)
	// GetByNumber busca un conteo por (auditoría, área, consecutivo);
	// respalda la unicidad de count_number dentro del par.
	GetByNumber(ctx context.Context, auditID string, areaID *string, countNumber int) (*entity.StockCount, error)
	ListByAudit(ctx context.Context, auditID string) ([]*entity.StockCount, error)
	Delete(ctx context.Context, companyID, id string) error

	// Ítems
	ListItems(ctx context.Context, countID string) ([]*entity.StockCountItem, error)
	CountItems(ctx context.Context, countID string) (int, error)
	// ReplaceItems borra todos los ítems actuales e inserta la lista dada tal
	// cual (sin merge con el estado previo).
	ReplaceItems(ctx context.Context, countID string, items []*entity.StockCountItem) error
	// GetItemForUpdate obtiene el ítem del conteo para ese código y bloquea la
	// fila; nil si no existe. Cierra la carrera del upsert de importaciones.
	GetItemForUpdate(ctx context.Context, countID, productCode string) (*entity.StockCountItem, error)
	CreateItem(ctx context.Context, item *entity.StockCountItem) error
	AddItemQuantity(ctx context.Context, itemID string, qty decimal.Decimal, now time.Time) error
	// ListItemsForReport lee ítems de conteos completados según el filtro
	// (insumo de los reportes de conciliación).
	ListItemsForReport(ctx context.Context, companyID string, f CountItemFilter) ([]*entity.StockCountItem, error)
}
