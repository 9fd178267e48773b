package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

var _ repository.StockAuditRepository = (*StockAuditRepo)(nil)

const auditColumns = `id, company_id, name, description, status, required_counts, responsible_id, start_date, end_date, created_at, updated_at`

// StockAuditRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockAuditRepo struct {
	q Querier
}

// NewStockAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAuditRepository(q Querier) *StockAuditRepo {
	return &StockAuditRepo{q: q}
}

// Create persiste una auditoría.
func (r *StockAuditRepo) Create(ctx context.Context, a *entity.StockAudit) error {
	query := `
		INSERT INTO stock_audits (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.Name, a.Description, a.Status, a.RequiredCounts,
		a.ResponsibleID, a.StartDate, a.EndDate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock audit: %w", err)
	}
	return nil
}

// Update sobreescribe los campos mutables de la auditoría.
func (r *StockAuditRepo) Update(ctx context.Context, a *entity.StockAudit) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_audits SET name = $3, description = $4, status = $5,
			required_counts = $6, responsible_id = $7, start_date = $8, end_date = $9, updated_at = $10
		WHERE company_id = $1 AND id = $2`,
		a.CompanyID, a.ID, a.Name, a.Description, a.Status,
		a.RequiredCounts, a.ResponsibleID, a.StartDate, a.EndDate, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una auditoría de la empresa; nil si no existe.
func (r *StockAuditRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockAudit, error) {
	var a entity.StockAudit
	err := r.q.QueryRow(ctx,
		`SELECT `+auditColumns+` FROM stock_audits WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(
		&a.ID, &a.CompanyID, &a.Name, &a.Description, &a.Status, &a.RequiredCounts,
		&a.ResponsibleID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock audit: %w", err)
	}
	return &a, nil
}

// ListByCompany lista auditorías de la empresa, de la más reciente a la más antigua.
func (r *StockAuditRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.StockAudit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+auditColumns+`
		FROM stock_audits WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock audits: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAudit
	for rows.Next() {
		var a entity.StockAudit
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.Name, &a.Description, &a.Status, &a.RequiredCounts,
			&a.ResponsibleID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete borra la auditoría; los conteos hijos caen por la FK en cascada.
func (r *StockAuditRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM stock_audits WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("delete stock audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
