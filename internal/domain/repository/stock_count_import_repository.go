package repository

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// StockCountImportRepository persistencia del registro de importaciones.
type StockCountImportRepository interface {
	Create(ctx context.Context, imp *entity.StockCountImport) error
	Update(ctx context.Context, imp *entity.StockCountImport) error
	GetByID(ctx context.Context, companyID, id string) (*entity.StockCountImport, error)
	ListByCount(ctx context.Context, countID string) ([]*entity.StockCountImport, error)
}
