package counting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// AuditUseCase ciclo de vida de las campañas de auditoría de inventario.
// Editable solo en planned/in_progress; borrable solo en planned.
type AuditUseCase struct {
	auditRepo repository.StockAuditRepository
	countRepo repository.StockCountRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(auditRepo repository.StockAuditRepository, countRepo repository.StockCountRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo, countRepo: countRepo}
}

// Create crea una auditoría en estado planned.
func (uc *AuditUseCase) Create(ctx context.Context, companyID string, in dto.CreateAuditRequest) (*entity.StockAudit, error) {
	if in.Name == "" || in.ResponsibleID == "" || in.RequiredCounts < 1 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	audit := &entity.StockAudit{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		Description:    in.Description,
		Status:         entity.AuditStatusPlanned,
		RequiredCounts: in.RequiredCounts,
		ResponsibleID:  in.ResponsibleID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// Update modifica una auditoría. Rechaza cambios cuando el estado ya no lo admite.
func (uc *AuditUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateAuditRequest) (*entity.StockAudit, error) {
	audit, err := uc.auditRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		return nil, domain.ErrNotFound
	}
	if !audit.IsEditable() {
		return nil, domain.ErrAuditNotEditable
	}
	if in.Name != nil {
		audit.Name = *in.Name
	}
	if in.Description != nil {
		audit.Description = *in.Description
	}
	if in.Status != nil {
		if !entity.ValidAuditStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		audit.Status = *in.Status
	}
	if in.RequiredCounts != nil {
		if *in.RequiredCounts < 1 {
			return nil, domain.ErrInvalidInput
		}
		audit.RequiredCounts = *in.RequiredCounts
	}
	if in.ResponsibleID != nil {
		audit.ResponsibleID = *in.ResponsibleID
	}
	if in.StartDate != nil {
		audit.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		audit.EndDate = in.EndDate
	}
	audit.UpdatedAt = time.Now()
	if err := uc.auditRepo.Update(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// Delete borra una auditoría; solo se permite mientras sigue en planned.
func (uc *AuditUseCase) Delete(ctx context.Context, companyID, id string) error {
	audit, err := uc.auditRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if audit == nil {
		return domain.ErrNotFound
	}
	if !audit.IsDeletable() {
		return domain.ErrConflict
	}
	return uc.auditRepo.Delete(ctx, companyID, id)
}

// GetByID obtiene una auditoría de la empresa.
func (uc *AuditUseCase) GetByID(ctx context.Context, companyID, id string) (*entity.StockAudit, error) {
	return uc.auditRepo.GetByID(ctx, companyID, id)
}

// List lista las auditorías de la empresa.
func (uc *AuditUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.StockAudit, error) {
	return uc.auditRepo.ListByCompany(ctx, companyID, limit, offset)
}
