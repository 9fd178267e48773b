package counting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Chirlanio/inmystock/internal/domain"
	domcounting "github.com/Chirlanio/inmystock/internal/domain/counting"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
	"github.com/Chirlanio/inmystock/pkg/logger"
)

// ImportUseCase importación masiva de un archivo de conteo contra una sesión.
// Primero acumula cantidades por barcode en memoria (líneas repetidas suman) y
// después aplica los ítems: si el conteo ya tiene un ítem para el código del
// producto, la cantidad se SUMA (acumulación idempotente entre importaciones
// repetidas), si no, se crea. Todo el lote corre en una sola transacción.
type ImportUseCase struct {
	txRunner   ImportTxRunner
	countRepo  repository.StockCountRepository
	importRepo repository.StockCountImportRepository
	store      FileStore
	log        *logger.Logger
}

// NewImportUseCase construye el caso de uso. countRepo e importRepo van atados
// al pool (lecturas); las escrituras usan los repos de la transacción.
func NewImportUseCase(
	txRunner ImportTxRunner,
	countRepo repository.StockCountRepository,
	importRepo repository.StockCountImportRepository,
	store FileStore,
	log *logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner, countRepo: countRepo, importRepo: importRepo, store: store, log: log.Component("importer")}
}

// ImportInput entrada de una importación.
type ImportInput struct {
	CompanyID    string
	UserID       string
	StockCountID string
	FileName     string
	Content      []byte
	Format       string // barcode_only | barcode_quantity
	Delimiter    string // un carácter: , ; tab |
}

// Import ejecuta la importación completa. El registro de importación, los
// upserts de ítems y el estado final se confirman juntos; ante cualquier error
// inesperado se revierte todo y el mensaje sube al caller.
func (uc *ImportUseCase) Import(ctx context.Context, in ImportInput) (*entity.StockCountImport, error) {
	if !entity.ValidImportFormat(in.Format) {
		return nil, domain.ErrInvalidInput
	}
	count, err := uc.countRepo.GetByID(ctx, in.CompanyID, in.StockCountID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if !count.IsEditable() {
		return nil, domain.ErrCountCompleted
	}

	text, err := domcounting.DecodeText(in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	parsed, err := domcounting.ParseFile(text, in.Format, in.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	// El archivo crudo se conserva antes de aplicar: si la transacción
	// revierte, el archivo huérfano es inofensivo.
	path, err := uc.store.Save(ctx, in.CompanyID, in.FileName, in.Content)
	if err != nil {
		return nil, fmt.Errorf("guardar archivo de importación: %w", err)
	}

	now := time.Now()
	imp := &entity.StockCountImport{
		ID:              uuid.New().String(),
		CompanyID:       in.CompanyID,
		StockCountID:    in.StockCountID,
		UserID:          in.UserID,
		FileName:        in.FileName,
		FilePath:        path,
		FileFormat:      in.Format,
		Delimiter:       in.Delimiter,
		Status:          entity.ImportStatusProcessing,
		TotalLines:      parsed.TotalLines,
		ProcessedLines:  parsed.ProcessedLines,
		SuccessfulLines: parsed.SuccessfulLines,
		FailedLines:     parsed.FailedLines,
		Errors:          parsed.Errors,
		CreatedAt:       now,
	}

	err = uc.txRunner.RunImport(ctx, func(
		countRepo repository.StockCountRepository,
		importRepo repository.StockCountImportRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := importRepo.Create(ctx, imp); err != nil {
			return err
		}
		if err := uc.applyItems(ctx, countRepo, productRepo, imp, parsed, count); err != nil {
			return err
		}

		completedAt := time.Now()
		imp.CompletedAt = &completedAt
		// failed solo si hubo fallos y ningún éxito; si algo entró, completed.
		if imp.FailedLines > 0 && imp.SuccessfulLines == 0 {
			imp.Status = entity.ImportStatusFailed
		} else {
			imp.Status = entity.ImportStatusCompleted
		}
		return importRepo.Update(ctx, imp)
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("stock_count_id", in.StockCountID).
			Str("file", in.FileName).
			Msg("importación revertida")
		return nil, fmt.Errorf("importación fallida: %w", err)
	}

	uc.log.Info().
		Str("stock_count_id", in.StockCountID).
		Str("file", in.FileName).
		Int("successful", imp.SuccessfulLines).
		Int("failed", imp.FailedLines).
		Int("errors", len(imp.Errors)).
		Msg("importación aplicada")
	return imp, nil
}

// applyItems aplica los totales acumulados por barcode, en orden de primera
// aparición. Un barcode sin producto registra un error de barcode (el lote
// continúa); un barcode resuelto suma sobre el ítem existente o crea uno nuevo
// con la instantánea código/nombre/unidad del producto.
func (uc *ImportUseCase) applyItems(
	ctx context.Context,
	countRepo repository.StockCountRepository,
	productRepo repository.ProductRepository,
	imp *entity.StockCountImport,
	parsed *domcounting.ParseResult,
	count *entity.StockCount,
) error {
	now := time.Now()
	for _, barcode := range parsed.Order {
		total := parsed.Totals[barcode]

		product, err := productRepo.GetByBarcode(ctx, imp.CompanyID, barcode)
		if err != nil {
			return err
		}
		if product == nil {
			imp.Errors = append(imp.Errors, entity.ImportError{
				Barcode: barcode,
				Message: "producto no encontrado para el barcode",
			})
			continue
		}

		// La fila del ítem se bloquea para que dos importaciones concurrentes
		// sobre el mismo conteo no dupliquen la acumulación.
		item, err := countRepo.GetItemForUpdate(ctx, count.ID, product.Code)
		if err != nil {
			return err
		}
		if item != nil {
			if err := countRepo.AddItemQuantity(ctx, item.ID, total, now); err != nil {
				return err
			}
			continue
		}
		newItem := &entity.StockCountItem{
			ID:              uuid.New().String(),
			StockCountID:    count.ID,
			ProductCode:     product.Code,
			ProductName:     product.Name,
			QuantityCounted: total,
			Unit:            product.Unit,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := countRepo.CreateItem(ctx, newItem); err != nil {
			return err
		}
	}
	return nil
}

// ListByCount lista las importaciones hechas contra un conteo.
func (uc *ImportUseCase) ListByCount(ctx context.Context, companyID, countID string) ([]*entity.StockCountImport, error) {
	count, err := uc.countRepo.GetByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	return uc.importRepo.ListByCount(ctx, countID)
}
