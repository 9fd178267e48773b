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

var _ repository.AreaRepository = (*AreaRepo)(nil)

const areaColumns = `id, company_id, code, name, location, active, created_at, updated_at`

// AreaRepo implementación sobre PostgreSQL (usable con pool o tx).
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

// Create persiste un área. ErrDuplicate si el código ya existe en la empresa.
func (r *AreaRepo) Create(ctx context.Context, a *entity.Area) error {
	query := `
		INSERT INTO areas (` + areaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.Code, a.Name, a.Location, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create area: %w", err)
	}
	return nil
}

// GetByID obtiene un área por ID; nil si no existe.
func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	var a entity.Area
	err := r.q.QueryRow(ctx,
		`SELECT `+areaColumns+` FROM areas WHERE id = $1`, id,
	).Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name, &a.Location, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

// ListByCompany lista áreas de la empresa paginadas por código.
func (r *AreaRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Area, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+areaColumns+`
		FROM areas WHERE company_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name, &a.Location, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
