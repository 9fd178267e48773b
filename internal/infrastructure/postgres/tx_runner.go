package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/application/inventory"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// Ensure TxRunner implements the transaction ports of both domains.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ counting.ImportTxRunner = (*TxRunner)(nil)
var _ counting.ItemsTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del libro de inventario, ejecuta fn
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	levelRepo repository.InventoryLevelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	levelRepo := NewInventoryLevelRepository(tx)

	if err := fn(movRepo, levelRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunItems inicia una transacción con el repo de conteos para el reemplazo
// completo de ítems (borrado + inserciones atómicos).
func (r *TxRunner) RunItems(ctx context.Context, fn func(
	countRepo repository.StockCountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockCountRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport inicia una transacción con los repos de una importación de conteo
// (ítems, registro de importación y catálogo de productos).
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	countRepo repository.StockCountRepository,
	importRepo repository.StockCountImportRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	countRepo := NewStockCountRepository(tx)
	importRepo := NewStockCountImportRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(countRepo, importRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
