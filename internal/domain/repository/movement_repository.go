package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// MovementFilter filtros para listados de movimientos.
type MovementFilter struct {
	ProductID string
	AreaID    *string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository persistencia del libro de movimientos.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Movement, error)
	// GetPairedLeg busca la otra pata de un traslado: la transfer_in que
	// referencia a movementID, o la transfer_out referenciada por el movimiento.
	GetPairedLeg(ctx context.Context, companyID string, m *entity.Movement) (*entity.Movement, error)
	List(ctx context.Context, companyID string, f MovementFilter) ([]*entity.Movement, error)
	SoftDelete(ctx context.Context, companyID, id string, now time.Time) error
	// NextSequence avanza y devuelve el consecutivo del día para la empresa
	// (fila contadora bloqueada; serializa la asignación de códigos).
	NextSequence(ctx context.Context, companyID string, day time.Time) (int, error)
	// SignedSum suma la contribución con signo de todos los movimientos no
	// borrados del producto sobre el agregado del área dada, junto con la
	// fecha del último movimiento sobreviviente.
	SignedSum(ctx context.Context, companyID, productID string, areaID *string) (decimal.Decimal, *time.Time, error)
}
