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

// CountUseCase ciclo de vida de las sesiones de conteo físico.
// La máquina de estados es monótona: pending -> in_progress -> completed.
type CountUseCase struct {
	countRepo repository.StockCountRepository
	auditRepo repository.StockAuditRepository
	txRunner  ItemsTxRunner
}

// NewCountUseCase construye el caso de uso. countRepo y auditRepo van atados
// al pool (lecturas); el reemplazo de ítems corre sobre el repo transaccional.
func NewCountUseCase(countRepo repository.StockCountRepository, auditRepo repository.StockAuditRepository, txRunner ItemsTxRunner) *CountUseCase {
	return &CountUseCase{countRepo: countRepo, auditRepo: auditRepo, txRunner: txRunner}
}

// Create abre una sesión de conteo dentro de una auditoría editable.
// Falla con ErrDuplicate si ya existe un conteo con ese consecutivo para
// (auditoría, área).
func (uc *CountUseCase) Create(ctx context.Context, companyID, auditID string, in dto.CreateCountRequest) (*entity.StockCount, error) {
	if in.CounterID == "" || in.CountNumber < 1 {
		return nil, domain.ErrInvalidInput
	}
	audit, err := uc.auditRepo.GetByID(ctx, companyID, auditID)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		return nil, domain.ErrNotFound
	}
	if !audit.IsEditable() {
		return nil, domain.ErrAuditNotEditable
	}

	existing, err := uc.countRepo.GetByNumber(ctx, auditID, in.AreaID, in.CountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	count := &entity.StockCount{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		AuditID:     auditID,
		AreaID:      in.AreaID,
		CounterID:   in.CounterID,
		CountNumber: in.CountNumber,
		Status:      entity.CountStatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.countRepo.Create(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// Start transiciona el conteo de pending a in_progress.
func (uc *CountUseCase) Start(ctx context.Context, companyID, countID string) (*entity.StockCount, error) {
	count, err := uc.mustGet(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	if err := count.Start(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.countRepo.Update(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// Complete cierra el conteo; exige al menos un ítem registrado.
func (uc *CountUseCase) Complete(ctx context.Context, companyID, countID string) (*entity.StockCount, error) {
	count, err := uc.mustGet(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	items, err := uc.countRepo.CountItems(ctx, countID)
	if err != nil {
		return nil, err
	}
	if err := count.Complete(time.Now(), items); err != nil {
		return nil, err
	}
	if err := uc.countRepo.Update(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// ReplaceItems reemplaza por completo los ítems del conteo: borra los actuales
// e inserta la lista recibida tal cual. El caller debe mandar la lista completa
// deseada; no hay merge con el estado previo. Borrado e inserciones corren en
// una transacción: si una inserción falla (p.ej. código repetido en la lista),
// los ítems anteriores quedan intactos.
func (uc *CountUseCase) ReplaceItems(ctx context.Context, companyID, countID string, items []dto.CountItemInput) ([]*entity.StockCountItem, error) {
	count, err := uc.mustGet(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	if !count.IsEditable() {
		return nil, domain.ErrCountCompleted
	}

	now := time.Now()
	entities := make([]*entity.StockCountItem, 0, len(items))
	for _, in := range items {
		if in.ProductCode == "" || in.QuantityCounted.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		entities = append(entities, &entity.StockCountItem{
			ID:              uuid.New().String(),
			StockCountID:    countID,
			ProductCode:     in.ProductCode,
			ProductName:     in.ProductName,
			QuantityCounted: in.QuantityCounted,
			Unit:            in.Unit,
			Location:        in.Location,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	err = uc.txRunner.RunItems(ctx, func(countRepo repository.StockCountRepository) error {
		return countRepo.ReplaceItems(ctx, countID, entities)
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Delete borra un conteo; nunca uno ya completado.
func (uc *CountUseCase) Delete(ctx context.Context, companyID, countID string) error {
	count, err := uc.mustGet(ctx, companyID, countID)
	if err != nil {
		return err
	}
	if !count.IsDeletable() {
		return domain.ErrCountCompleted
	}
	return uc.countRepo.Delete(ctx, companyID, countID)
}

// GetByID obtiene un conteo de la empresa.
func (uc *CountUseCase) GetByID(ctx context.Context, companyID, countID string) (*entity.StockCount, error) {
	return uc.countRepo.GetByID(ctx, companyID, countID)
}

// ListByAudit lista los conteos de una auditoría.
func (uc *CountUseCase) ListByAudit(ctx context.Context, companyID, auditID string) ([]*entity.StockCount, error) {
	audit, err := uc.auditRepo.GetByID(ctx, companyID, auditID)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		return nil, domain.ErrNotFound
	}
	return uc.countRepo.ListByAudit(ctx, auditID)
}

// ListItems lista los ítems de un conteo.
func (uc *CountUseCase) ListItems(ctx context.Context, companyID, countID string) ([]*entity.StockCountItem, error) {
	if _, err := uc.mustGet(ctx, companyID, countID); err != nil {
		return nil, err
	}
	return uc.countRepo.ListItems(ctx, countID)
}

func (uc *CountUseCase) mustGet(ctx context.Context, companyID, countID string) (*entity.StockCount, error) {
	count, err := uc.countRepo.GetByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	return count, nil
}
