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

// AreaUseCase mantenimiento del catálogo de áreas físicas.
type AreaUseCase struct {
	areaRepo repository.AreaRepository
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(areaRepo repository.AreaRepository) *AreaUseCase {
	return &AreaUseCase{areaRepo: areaRepo}
}

// Create da de alta un área activa. ErrDuplicate si el código ya existe.
func (uc *AreaUseCase) Create(ctx context.Context, companyID string, in dto.CreateAreaRequest) (*entity.Area, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.Area{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Location:  in.Location,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.areaRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID obtiene un área de la empresa; ErrNotFound si no existe o es ajena.
func (uc *AreaUseCase) GetByID(ctx context.Context, companyID, id string) (*entity.Area, error) {
	a, err := uc.areaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// List lista áreas de la empresa paginadas.
func (uc *AreaUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Area, error) {
	return uc.areaRepo.ListByCompany(ctx, companyID, limit, offset)
}
