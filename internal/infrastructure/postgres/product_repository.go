package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, code, barcode, name, description, unit, min_stock, active, created_at, updated_at`

// ProductRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto. ErrDuplicate si el código ya existe en la empresa.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Code, p.Barcode, p.Name, p.Description,
		p.Unit, p.MinStock, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update sobreescribe los campos mutables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET code = $2, barcode = $3, name = $4, description = $5,
			unit = $6, min_stock = $7, active = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Code, p.Barcode, p.Name, p.Description, p.Unit, p.MinStock, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByCode obtiene un producto por su código único dentro de la empresa.
func (r *ProductRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND code = $2`
	return r.getOne(ctx, query, companyID, code)
}

// GetByBarcode resuelve un producto por barcode (igualdad de cadena).
func (r *ProductRepo) GetByBarcode(ctx context.Context, companyID, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND barcode = $2`
	return r.getOne(ctx, query, companyID, barcode)
}

// ListByCompany lista productos de la empresa paginados por código.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE company_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// ListActive devuelve todos los productos activos de la empresa.
func (r *ProductRepo) ListActive(ctx context.Context, companyID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE company_id = $1 AND active ORDER BY code`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Barcode, &p.Name, &p.Description,
		&p.Unit, &p.MinStock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
