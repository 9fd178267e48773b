package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

var _ repository.StockCountImportRepository = (*StockCountImportRepo)(nil)

const importColumns = `id, company_id, stock_count_id, user_id, file_name, file_path, file_format, delimiter,
		status, total_lines, processed_lines, successful_lines, failed_lines, errors, created_at, completed_at`

// StockCountImportRepo implementación sobre PostgreSQL (usable con pool o tx).
// La lista de errores se guarda como jsonb.
type StockCountImportRepo struct {
	q Querier
}

// NewStockCountImportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCountImportRepository(q Querier) *StockCountImportRepo {
	return &StockCountImportRepo{q: q}
}

// Create persiste el registro de una importación.
func (r *StockCountImportRepo) Create(ctx context.Context, imp *entity.StockCountImport) error {
	errJSON, err := marshalImportErrors(imp.Errors)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO stock_count_imports (` + importColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		imp.ID, imp.CompanyID, imp.StockCountID, imp.UserID, imp.FileName, imp.FilePath,
		imp.FileFormat, imp.Delimiter, imp.Status, imp.TotalLines, imp.ProcessedLines,
		imp.SuccessfulLines, imp.FailedLines, errJSON, imp.CreatedAt, imp.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock count import: %w", err)
	}
	return nil
}

// Update sobreescribe contadores, errores y estado final del registro.
func (r *StockCountImportRepo) Update(ctx context.Context, imp *entity.StockCountImport) error {
	errJSON, err := marshalImportErrors(imp.Errors)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_count_imports
		SET status = $2, total_lines = $3, processed_lines = $4, successful_lines = $5,
			failed_lines = $6, errors = $7, completed_at = $8
		WHERE id = $1`,
		imp.ID, imp.Status, imp.TotalLines, imp.ProcessedLines, imp.SuccessfulLines,
		imp.FailedLines, errJSON, imp.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock count import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un registro de importación de la empresa; nil si no existe.
func (r *StockCountImportRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockCountImport, error) {
	imp, err := scanImport(r.q.QueryRow(ctx,
		`SELECT `+importColumns+` FROM stock_count_imports WHERE company_id = $1 AND id = $2`,
		companyID, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return imp, nil
}

// ListByCount lista las importaciones hechas contra un conteo, de la más
// reciente a la más antigua.
func (r *StockCountImportRepo) ListByCount(ctx context.Context, countID string) ([]*entity.StockCountImport, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+importColumns+` FROM stock_count_imports WHERE stock_count_id = $1 ORDER BY created_at DESC`,
		countID,
	)
	if err != nil {
		return nil, fmt.Errorf("list imports by count: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockCountImport
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, imp)
	}
	return list, rows.Err()
}

func marshalImportErrors(errs []entity.ImportError) ([]byte, error) {
	if errs == nil {
		errs = []entity.ImportError{}
	}
	b, err := json.Marshal(errs)
	if err != nil {
		return nil, fmt.Errorf("marshal import errors: %w", err)
	}
	return b, nil
}

func scanImport(row pgx.Row) (*entity.StockCountImport, error) {
	var imp entity.StockCountImport
	var errJSON []byte
	err := row.Scan(
		&imp.ID, &imp.CompanyID, &imp.StockCountID, &imp.UserID, &imp.FileName, &imp.FilePath,
		&imp.FileFormat, &imp.Delimiter, &imp.Status, &imp.TotalLines, &imp.ProcessedLines,
		&imp.SuccessfulLines, &imp.FailedLines, &errJSON, &imp.CreatedAt, &imp.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock count import: %w", err)
	}
	if len(errJSON) > 0 {
		if err := json.Unmarshal(errJSON, &imp.Errors); err != nil {
			return nil, fmt.Errorf("unmarshal import errors: %w", err)
		}
	}
	return &imp, nil
}
