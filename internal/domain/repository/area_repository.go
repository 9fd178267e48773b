package repository

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// AreaRepository persistencia del catálogo de áreas.
type AreaRepository interface {
	Create(ctx context.Context, a *entity.Area) error
	GetByID(ctx context.Context, id string) (*entity.Area, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Area, error)
}
