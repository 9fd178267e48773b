package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, company_id, code, product_id, type, quantity, unit_cost, total_cost,
		area_id, from_area_id, to_area_id, reference_type, reference_id, movement_date, user_id, created_at, deleted_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un asiento del libro de movimientos.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Code, m.ProductID, m.Type, m.Quantity, m.UnitCost, m.TotalCost,
		m.AreaID, m.FromAreaID, m.ToAreaID, m.ReferenceType, m.ReferenceID,
		m.MovementDate, m.UserID, m.CreatedAt, m.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento no borrado de la empresa; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`
	return r.getOne(ctx, query, companyID, id)
}

// GetPairedLeg busca la otra pata de un traslado: para una transfer_out, la
// transfer_in que la referencia; para una transfer_in, la transfer_out a la
// que apunta su referencia. nil para movimientos simples o patas huérfanas.
func (r *MovementRepo) GetPairedLeg(ctx context.Context, companyID string, m *entity.Movement) (*entity.Movement, error) {
	switch m.Type {
	case entity.MovementTypeTransferOut:
		query := `
			SELECT ` + movementColumns + `
			FROM movements
			WHERE company_id = $1 AND type = $2 AND reference_type = $3 AND reference_id = $4 AND deleted_at IS NULL`
		return r.getOne(ctx, query, companyID, entity.MovementTypeTransferIn, entity.ReferenceTypeMovement, m.ID)
	case entity.MovementTypeTransferIn:
		if m.ReferenceID == "" {
			return nil, nil
		}
		return r.GetByID(ctx, companyID, m.ReferenceID)
	}
	return nil, nil
}

// List lista movimientos no borrados de la empresa según el filtro, del más
// reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE company_id = $1 AND deleted_at IS NULL`
	args := []any{companyID}
	pos := 2
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.AreaID != nil {
		query += fmt.Sprintf(" AND (area_id = $%d OR from_area_id = $%d OR to_area_id = $%d)", pos, pos, pos)
		args = append(args, *f.AreaID)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC, code DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SoftDelete marca el movimiento como borrado; el asiento permanece en la tabla.
func (r *MovementRepo) SoftDelete(ctx context.Context, companyID, id string, now time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE movements SET deleted_at = $3 WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		companyID, id, now,
	)
	if err != nil {
		return fmt.Errorf("soft delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextSequence avanza y devuelve el consecutivo del día para la empresa.
// El upsert sobre la fila contadora la bloquea hasta el commit, así dos
// transacciones concurrentes nunca reciben el mismo número.
func (r *MovementRepo) NextSequence(ctx context.Context, companyID string, day time.Time) (int, error) {
	var seq int
	err := r.q.QueryRow(ctx, `
		INSERT INTO movement_counters (company_id, day, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, day)
		DO UPDATE SET seq = movement_counters.seq + 1
		RETURNING seq`,
		companyID, day.Format("2006-01-02"),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next movement sequence: %w", err)
	}
	return seq, nil
}

// SignedSum suma la contribución con signo de los movimientos sobrevivientes
// del producto sobre el agregado del área dada (nil = fila sin área), junto
// con la fecha del último movimiento. Cada asiento afecta exactamente un
// agregado: las patas de traslado apuntan a su área origen o destino.
func (r *MovementRepo) SignedSum(ctx context.Context, companyID, productID string, areaID *string) (decimal.Decimal, *time.Time, error) {
	var sum decimal.Decimal
	var lastAt *time.Time
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE
				WHEN type IN ('entry', 'adjustment', 'transfer_in') THEN quantity
				ELSE -quantity
			END), 0),
			MAX(movement_date)
		FROM movements
		WHERE company_id = $1 AND product_id = $2 AND deleted_at IS NULL
		  AND (CASE type
				WHEN 'transfer_out' THEN from_area_id
				WHEN 'transfer_in'  THEN to_area_id
				ELSE area_id
			END) IS NOT DISTINCT FROM $3`,
		companyID, productID, areaID,
	).Scan(&sum, &lastAt)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("signed sum: %w", err)
	}
	return sum, lastAt, nil
}

func (r *MovementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Movement, error) {
	row := r.q.QueryRow(ctx, query, args...)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var refType, refID *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.Code, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost, &m.TotalCost,
		&m.AreaID, &m.FromAreaID, &m.ToAreaID, &refType, &refID,
		&m.MovementDate, &m.UserID, &m.CreatedAt, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if refType != nil {
		m.ReferenceType = *refType
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	return &m, nil
}
