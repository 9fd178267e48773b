// Package usecase contiene los casos de uso de los catálogos base
// (productos y áreas).
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// ProductUseCase mantenimiento del catálogo de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto activo. ErrDuplicate si el código ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        in.Code,
		Barcode:     in.Barcode,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		MinStock:    in.MinStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene un producto de la empresa; ErrNotFound si no existe o es ajeno.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List lista productos de la empresa paginados.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByCompany(ctx, companyID, limit, offset)
}
