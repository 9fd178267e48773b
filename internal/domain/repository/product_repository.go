package repository

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// ProductRepository persistencia del catálogo de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	// GetByBarcode resuelve un producto por barcode (igualdad de cadena);
	// es la búsqueda que usa la importación masiva de conteos.
	GetByBarcode(ctx context.Context, companyID, barcode string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// ListActive devuelve todos los productos activos de la empresa
	// (universo del reporte de productos faltantes).
	ListActive(ctx context.Context, companyID string) ([]*entity.Product, error)
}
