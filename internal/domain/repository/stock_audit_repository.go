package repository

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// StockAuditRepository persistencia de las campañas de auditoría.
type StockAuditRepository interface {
	Create(ctx context.Context, a *entity.StockAudit) error
	Update(ctx context.Context, a *entity.StockAudit) error
	GetByID(ctx context.Context, companyID, id string) (*entity.StockAudit, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.StockAudit, error)
	Delete(ctx context.Context, companyID, id string) error
}
