package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	dominv "github.com/Chirlanio/inmystock/internal/domain/inventory"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de inventario de forma
// transaccional. Un traslado crea las dos patas (transfer_out + transfer_in
// referenciada) y aplica ambos deltas de agregado en la misma transacción.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	areaRepo    repository.AreaRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	areaRepo repository.AreaRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		areaRepo:    areaRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para entry/exit/adjustment: AreaID obligatorio.
// Para transfer_out: FromAreaID y ToAreaID obligatorios y distintos.
// CompanyID y UserID siempre explícitos; nunca se toman de estado ambiente.
type MovementInput struct {
	CompanyID    string
	UserID       string
	ProductID    string
	Type         string
	Quantity     decimal.Decimal
	AreaID       *string
	FromAreaID   *string
	ToAreaID     *string
	UnitCost     *decimal.Decimal
	MovementDate *time.Time
}

// Record valida la entrada, asigna el código consecutivo, crea el o los
// asientos y actualiza los agregados afectados, todo dentro de una transacción.
// Devuelve los movimientos creados (uno, o dos para un traslado).
func (uc *RecordMovementUseCase) Record(ctx context.Context, input MovementInput) ([]*entity.Movement, error) {
	if err := uc.validate(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now()
	movementDate := now
	if input.MovementDate != nil {
		movementDate = *input.MovementDate
	}

	var created []*entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		if input.Type == entity.MovementTypeTransferOut {
			legs, err := uc.recordTransfer(ctx, movRepo, levelRepo, input, movementDate, now)
			if err != nil {
				return err
			}
			created = legs
			return nil
		}
		mov, err := uc.recordSimple(ctx, movRepo, levelRepo, input, movementDate, now)
		if err != nil {
			return err
		}
		created = []*entity.Movement{mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *RecordMovementUseCase) validate(ctx context.Context, input MovementInput) error {
	if !entity.ValidMovementType(input.Type) || input.Type == entity.MovementTypeTransferIn {
		// transfer_in solo se crea internamente como pata de un transfer_out
		return domain.ErrInvalidInput
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementTypeEntry, entity.MovementTypeExit, entity.MovementTypeAdjustment:
		if input.AreaID == nil || *input.AreaID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransferOut:
		if input.FromAreaID == nil || input.ToAreaID == nil ||
			*input.FromAreaID == "" || *input.ToAreaID == "" {
			return domain.ErrInvalidInput
		}
		if *input.FromAreaID == *input.ToAreaID {
			return domain.ErrInvalidInput
		}
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}

	areaIDs := []*string{input.AreaID, input.FromAreaID, input.ToAreaID}
	for _, id := range areaIDs {
		if id == nil || *id == "" {
			continue
		}
		area, err := uc.areaRepo.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		if area == nil || area.CompanyID != input.CompanyID {
			return domain.ErrNotFound
		}
	}
	return nil
}

// recordSimple crea un asiento entry/exit/adjustment y aplica su delta.
func (uc *RecordMovementUseCase) recordSimple(
	ctx context.Context,
	movRepo repository.MovementRepository,
	levelRepo repository.InventoryLevelRepository,
	input MovementInput,
	movementDate, now time.Time,
) (*entity.Movement, error) {
	code, err := uc.nextCode(ctx, movRepo, input.CompanyID, now)
	if err != nil {
		return nil, err
	}
	mov := buildMovement(input, input.Type, code, movementDate, now)
	mov.AreaID = input.AreaID
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := applyDelta(ctx, levelRepo, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// recordTransfer crea el par atómico transfer_out/transfer_in. Ambas patas
// llevan la misma cantidad, costos y fechas; la transfer_in referencia a la
// transfer_out. El agregado del área origen baja y el del destino sube.
func (uc *RecordMovementUseCase) recordTransfer(
	ctx context.Context,
	movRepo repository.MovementRepository,
	levelRepo repository.InventoryLevelRepository,
	input MovementInput,
	movementDate, now time.Time,
) ([]*entity.Movement, error) {
	outCode, err := uc.nextCode(ctx, movRepo, input.CompanyID, now)
	if err != nil {
		return nil, err
	}
	outLeg := buildMovement(input, entity.MovementTypeTransferOut, outCode, movementDate, now)
	outLeg.FromAreaID = input.FromAreaID
	outLeg.ToAreaID = input.ToAreaID
	if err := movRepo.Create(ctx, outLeg); err != nil {
		return nil, err
	}

	inCode, err := uc.nextCode(ctx, movRepo, input.CompanyID, now)
	if err != nil {
		return nil, err
	}
	inLeg := buildMovement(input, entity.MovementTypeTransferIn, inCode, movementDate, now)
	inLeg.FromAreaID = input.FromAreaID
	inLeg.ToAreaID = input.ToAreaID
	inLeg.ReferenceType = entity.ReferenceTypeMovement
	inLeg.ReferenceID = outLeg.ID
	if err := movRepo.Create(ctx, inLeg); err != nil {
		return nil, err
	}

	if err := applyDelta(ctx, levelRepo, outLeg); err != nil {
		return nil, err
	}
	if err := applyDelta(ctx, levelRepo, inLeg); err != nil {
		return nil, err
	}
	return []*entity.Movement{outLeg, inLeg}, nil
}

// nextCode asigna el consecutivo MOV-YYYYMMDD-NNNN del día para la empresa.
// El contador vive en una fila por (empresa, día) bloqueada al avanzar, así
// dos escrituras concurrentes nunca compiten por el mismo código.
func (uc *RecordMovementUseCase) nextCode(ctx context.Context, movRepo repository.MovementRepository, companyID string, now time.Time) (string, error) {
	seq, err := movRepo.NextSequence(ctx, companyID, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("MOV-%s-%04d", now.Format("20060102"), seq), nil
}

func buildMovement(input MovementInput, movType, code string, movementDate, now time.Time) *entity.Movement {
	mov := &entity.Movement{
		ID:           uuid.New().String(),
		CompanyID:    input.CompanyID,
		Code:         code,
		ProductID:    input.ProductID,
		Type:         movType,
		Quantity:     input.Quantity.Abs(),
		UnitCost:     input.UnitCost,
		MovementDate: movementDate,
		UserID:       input.UserID,
		CreatedAt:    now,
	}
	if input.UnitCost != nil {
		total := mov.Quantity.Mul(*input.UnitCost)
		mov.TotalCost = &total
	}
	return mov
}

// applyDelta aplica la contribución con signo del asiento sobre su agregado
// objetivo y estampa last_movement_at, dentro de la transacción en curso.
func applyDelta(ctx context.Context, levelRepo repository.InventoryLevelRepository, mov *entity.Movement) error {
	signed, err := dominv.SignedQuantity(mov.Type, mov.Quantity)
	if err != nil {
		return err
	}
	target := dominv.TargetArea(mov)
	return levelRepo.AddDelta(ctx, mov.CompanyID, mov.ProductID, target, signed, mov.MovementDate)
}
