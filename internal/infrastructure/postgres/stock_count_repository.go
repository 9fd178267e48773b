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

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

const countColumns = `id, company_id, audit_id, area_id, counter_id, count_number, status, started_at, completed_at, notes, created_at, updated_at`
const countItemColumns = `id, stock_count_id, product_code, product_name, quantity_counted, unit, location, created_at, updated_at`

// StockCountRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

// Create persiste una sesión de conteo. ErrDuplicate si el consecutivo ya
// existe para (auditoría, área).
func (r *StockCountRepo) Create(ctx context.Context, c *entity.StockCount) error {
	query := `
		INSERT INTO stock_counts (` + countColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.AuditID, c.AreaID, c.CounterID, c.CountNumber,
		c.Status, c.StartedAt, c.CompletedAt, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock count: %w", err)
	}
	return nil
}

// Update sobreescribe estado, marcas de tiempo y notas del conteo.
func (r *StockCountRepo) Update(ctx context.Context, c *entity.StockCount) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_counts SET status = $3, started_at = $4, completed_at = $5, notes = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`,
		c.CompanyID, c.ID, c.Status, c.StartedAt, c.CompletedAt, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un conteo de la empresa; nil si no existe.
func (r *StockCountRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockCount, error) {
	query := `SELECT ` + countColumns + ` FROM stock_counts WHERE company_id = $1 AND id = $2`
	return r.getOne(ctx, query, companyID, id)
}

// GetByNumber busca un conteo por (auditoría, área, consecutivo); nil si no existe.
func (r *StockCountRepo) GetByNumber(ctx context.Context, auditID string, areaID *string, countNumber int) (*entity.StockCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM stock_counts
		WHERE audit_id = $1 AND area_id IS NOT DISTINCT FROM $2 AND count_number = $3`
	return r.getOne(ctx, query, auditID, areaID, countNumber)
}

// ListByAudit lista los conteos de una auditoría ordenados por consecutivo.
func (r *StockCountRepo) ListByAudit(ctx context.Context, auditID string) ([]*entity.StockCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+countColumns+`
		FROM stock_counts WHERE audit_id = $1
		ORDER BY area_id NULLS FIRST, count_number`,
		auditID,
	)
	if err != nil {
		return nil, fmt.Errorf("list counts by audit: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockCount
	for rows.Next() {
		c, err := scanCount(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete borra el conteo; sus ítems e importaciones caen por FK en cascada.
func (r *StockCountRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM stock_counts WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("delete stock count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems lista los ítems del conteo ordenados por código de producto.
func (r *StockCountRepo) ListItems(ctx context.Context, countID string) ([]*entity.StockCountItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+countItemColumns+`
		FROM stock_count_items WHERE stock_count_id = $1
		ORDER BY product_code`,
		countID,
	)
	if err != nil {
		return nil, fmt.Errorf("list count items: %w", err)
	}
	return collectItems(rows)
}

// CountItems devuelve cuántos ítems tiene el conteo.
func (r *StockCountRepo) CountItems(ctx context.Context, countID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_count_items WHERE stock_count_id = $1`, countID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// ReplaceItems borra todos los ítems actuales e inserta la lista dada tal cual.
func (r *StockCountRepo) ReplaceItems(ctx context.Context, countID string, items []*entity.StockCountItem) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM stock_count_items WHERE stock_count_id = $1`, countID,
	); err != nil {
		return fmt.Errorf("clear count items: %w", err)
	}
	for _, item := range items {
		if err := r.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// GetItemForUpdate obtiene el ítem del conteo para ese código y bloquea la
// fila hasta el commit; nil si no existe.
func (r *StockCountRepo) GetItemForUpdate(ctx context.Context, countID, productCode string) (*entity.StockCountItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, `
		SELECT `+countItemColumns+`
		FROM stock_count_items
		WHERE stock_count_id = $1 AND product_code = $2
		FOR UPDATE`,
		countID, productCode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// CreateItem persiste una línea de conteo.
func (r *StockCountRepo) CreateItem(ctx context.Context, item *entity.StockCountItem) error {
	query := `
		INSERT INTO stock_count_items (` + countItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.StockCountID, item.ProductCode, item.ProductName,
		item.QuantityCounted, item.Unit, item.Location, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create count item: %w", err)
	}
	return nil
}

// AddItemQuantity suma qty sobre la cantidad ya contada del ítem.
func (r *StockCountRepo) AddItemQuantity(ctx context.Context, itemID string, qty decimal.Decimal, now time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_count_items
		SET quantity_counted = quantity_counted + $2, updated_at = $3
		WHERE id = $1`,
		itemID, qty, now,
	)
	if err != nil {
		return fmt.Errorf("add item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItemsForReport lee ítems de conteos completados de la empresa según el
// filtro; es el insumo de los reportes de conciliación.
func (r *StockCountRepo) ListItemsForReport(ctx context.Context, companyID string, f repository.CountItemFilter) ([]*entity.StockCountItem, error) {
	query := `
		SELECT i.id, i.stock_count_id, i.product_code, i.product_name, i.quantity_counted, i.unit, i.location, i.created_at, i.updated_at
		FROM stock_count_items i
		JOIN stock_counts c ON c.id = i.stock_count_id
		WHERE c.company_id = $1 AND c.status = $2`
	args := []any{companyID, entity.CountStatusCompleted}
	pos := 3
	if f.CountID != "" {
		query += fmt.Sprintf(" AND c.id = $%d", pos)
		args = append(args, f.CountID)
		pos++
	}
	if f.AreaID != nil {
		query += fmt.Sprintf(" AND c.area_id = $%d", pos)
		args = append(args, *f.AreaID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND c.completed_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND c.completed_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += " ORDER BY i.product_code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items for report: %w", err)
	}
	return collectItems(rows)
}

func (r *StockCountRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockCount, error) {
	c, err := scanCount(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCount(row pgx.Row) (*entity.StockCount, error) {
	var c entity.StockCount
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.AuditID, &c.AreaID, &c.CounterID, &c.CountNumber,
		&c.Status, &c.StartedAt, &c.CompletedAt, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock count: %w", err)
	}
	return &c, nil
}

func scanItem(row pgx.Row) (*entity.StockCountItem, error) {
	var it entity.StockCountItem
	err := row.Scan(
		&it.ID, &it.StockCountID, &it.ProductCode, &it.ProductName,
		&it.QuantityCounted, &it.Unit, &it.Location, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan count item: %w", err)
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.StockCountItem, error) {
	defer rows.Close()
	var list []*entity.StockCountItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
