package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

const levelColumns = `id, company_id, product_id, area_id, quantity, reserved_quantity, available_quantity, last_movement_at, updated_at`

// La unicidad del agregado es por (company_id, product_id, COALESCE(area_id, '')):
// el índice de expresión permite una fila "sin área" por producto junto a las
// filas por área. El ON CONFLICT debe nombrar las mismas expresiones.
const levelConflictTarget = `(company_id, product_id, COALESCE(area_id, ''))`

// InventoryLevelRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// Get obtiene el nivel del par (producto, área); nil si nunca hubo movimientos.
func (r *InventoryLevelRepo) Get(ctx context.Context, companyID, productID string, areaID *string) (*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE company_id = $1 AND product_id = $2 AND area_id IS NOT DISTINCT FROM $3`
	level, err := scanLevel(r.q.QueryRow(ctx, query, companyID, productID, areaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return level, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila hasta el commit. Si no
// existe devuelve un nivel en cero listo para Upsert (sin bloquear nada:
// la carrera de creación la resuelve el ON CONFLICT del upsert).
func (r *InventoryLevelRepo) GetForUpdate(ctx context.Context, companyID, productID string, areaID *string) (*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE company_id = $1 AND product_id = $2 AND area_id IS NOT DISTINCT FROM $3
		FOR UPDATE`
	level, err := scanLevel(r.q.QueryRow(ctx, query, companyID, productID, areaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryLevel{
				CompanyID:         companyID,
				ProductID:         productID,
				AreaID:            areaID,
				Quantity:          decimal.Zero,
				ReservedQuantity:  decimal.Zero,
				AvailableQuantity: decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return level, nil
}

// Upsert inserta o sobreescribe el nivel completo (saldo, reservas y derivado).
func (r *InventoryLevelRepo) Upsert(ctx context.Context, level *entity.InventoryLevel) error {
	if level.ID == "" {
		level.ID = uuid.New().String()
	}
	level.UpdatedAt = time.Now()
	query := `
		INSERT INTO inventory_levels (` + levelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ` + levelConflictTarget + ` DO UPDATE SET
			quantity = EXCLUDED.quantity,
			reserved_quantity = EXCLUDED.reserved_quantity,
			available_quantity = EXCLUDED.available_quantity,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		level.ID, level.CompanyID, level.ProductID, level.AreaID,
		level.Quantity, level.ReservedQuantity, level.AvailableQuantity,
		level.LastMovementAt, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}

// AddDelta aplica un incremento con signo al agregado en una sola sentencia:
// crea la fila si es el primer movimiento del par, acumula si ya existe.
// available_quantity se rederiva en la misma sentencia para que nunca quede
// divergente del saldo.
func (r *InventoryLevelRepo) AddDelta(ctx context.Context, companyID, productID string, areaID *string, delta decimal.Decimal, at time.Time) error {
	query := `
		INSERT INTO inventory_levels (` + levelColumns + `)
		VALUES ($1, $2, $3, $4, $5, 0, $5, $6, $7)
		ON CONFLICT ` + levelConflictTarget + ` DO UPDATE SET
			quantity = inventory_levels.quantity + EXCLUDED.quantity,
			available_quantity = inventory_levels.quantity + EXCLUDED.quantity - inventory_levels.reserved_quantity,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		uuid.New().String(), companyID, productID, areaID, delta, at, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("add inventory delta: %w", err)
	}
	return nil
}

// Rebuild sobreescribe el saldo con el resultado de una resumación total,
// conservando lo reservado y rederivando el disponible.
func (r *InventoryLevelRepo) Rebuild(ctx context.Context, companyID, productID string, areaID *string, quantity decimal.Decimal, lastMovementAt *time.Time) error {
	query := `
		INSERT INTO inventory_levels (` + levelColumns + `)
		VALUES ($1, $2, $3, $4, $5, 0, $5, $6, $7)
		ON CONFLICT ` + levelConflictTarget + ` DO UPDATE SET
			quantity = EXCLUDED.quantity,
			available_quantity = EXCLUDED.quantity - inventory_levels.reserved_quantity,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		uuid.New().String(), companyID, productID, areaID, quantity, lastMovementAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("rebuild inventory level: %w", err)
	}
	return nil
}

// ListByProduct lista los niveles del producto a través de todas las áreas.
func (r *InventoryLevelRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE company_id = $1 AND product_id = $2
		ORDER BY area_id NULLS FIRST`
	rows, err := r.q.Query(ctx, query, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("list levels by product: %w", err)
	}
	return collectLevels(rows)
}

// ListByArea lista los niveles de un área (nil = la fila sin área).
func (r *InventoryLevelRepo) ListByArea(ctx context.Context, companyID string, areaID *string, limit, offset int) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE company_id = $1 AND area_id IS NOT DISTINCT FROM $2
		ORDER BY product_id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, areaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list levels by area: %w", err)
	}
	return collectLevels(rows)
}

// TotalByProduct suma el saldo del producto a través de todas las áreas.
func (r *InventoryLevelRepo) TotalByProduct(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_levels
		WHERE company_id = $1 AND product_id = $2`,
		companyID, productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total by product: %w", err)
	}
	return total, nil
}

// GetByProductCode resuelve el stock teórico vía el código del producto:
// el saldo del área indicada, o el total entre áreas cuando areaID es nil.
// Cero si el producto no existe o nunca tuvo movimientos.
func (r *InventoryLevelRepo) GetByProductCode(ctx context.Context, companyID, productCode string, areaID *string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.quantity), 0)
		FROM inventory_levels l
		JOIN products p ON p.company_id = l.company_id AND p.id = l.product_id
		WHERE l.company_id = $1 AND p.code = $2`
	args := []any{companyID, productCode}
	if areaID != nil {
		query += " AND l.area_id = $3"
		args = append(args, *areaID)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("get level by product code: %w", err)
	}
	return total, nil
}

func scanLevel(row pgx.Row) (*entity.InventoryLevel, error) {
	var l entity.InventoryLevel
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.ProductID, &l.AreaID,
		&l.Quantity, &l.ReservedQuantity, &l.AvailableQuantity,
		&l.LastMovementAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan inventory level: %w", err)
	}
	return &l, nil
}

func collectLevels(rows pgx.Rows) ([]*entity.InventoryLevel, error) {
	defer rows.Close()
	var list []*entity.InventoryLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
