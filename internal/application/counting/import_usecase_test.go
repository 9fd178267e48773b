package counting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// La importación masiva acumula por barcode (escaneos repetidos suman) y
// aplica todo el lote junto. Los barcodes sin producto quedan registrados como
// errores estructurados sin tumbar el resto del archivo.
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID = "co-1"
	userID    = "user-1"
	countID   = "count-1"
)

type importFixture struct {
	countRepo  *fakeCountRepo
	importRepo *fakeImportRepo
	store      *fakeFileStore
	uc         *counting.ImportUseCase
}

func newImportFixture(countStatus string) *importFixture {
	countRepo := newFakeCountRepo(&entity.StockCount{
		ID: countID, CompanyID: companyID, AuditID: "audit-1",
		CounterID: userID, CountNumber: 1, Status: countStatus,
	})
	importRepo := newFakeImportRepo()
	productRepo := newFakeProductRepo(
		&entity.Product{ID: "p1", CompanyID: companyID, Code: "P-001", Barcode: "7701234", Name: "Café 500g", Unit: "UND", Active: true},
		&entity.Product{ID: "p2", CompanyID: companyID, Code: "P-002", Barcode: "7705678", Name: "Azúcar 1kg", Unit: "UND", Active: true},
	)
	tx := &fakeImportTxRunner{countRepo: countRepo, importRepo: importRepo, productRepo: productRepo}
	store := &fakeFileStore{}
	return &importFixture{
		countRepo:  countRepo,
		importRepo: importRepo,
		store:      store,
		uc:         counting.NewImportUseCase(tx, countRepo, importRepo, store, testLogger()),
	}
}

func importInput(content, format string) counting.ImportInput {
	return counting.ImportInput{
		CompanyID: companyID, UserID: userID, StockCountID: countID,
		FileName: "conteo.txt", Content: []byte(content),
		Format: format, Delimiter: ",",
	}
}

func TestImport_AcumulaPorBarcode(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)
	ctx := context.Background()

	imp, err := f.uc.Import(ctx, importInput("7701234\n7701234\n7705678\n7701234\n", entity.ImportFormatBarcodeOnly))
	require.NoError(t, err)

	assert.Equal(t, entity.ImportStatusCompleted, imp.Status)
	assert.Equal(t, 4, imp.TotalLines)
	assert.Equal(t, 4, imp.SuccessfulLines)
	assert.Empty(t, imp.Errors)
	require.NotNil(t, imp.CompletedAt)
	assert.NotEmpty(t, imp.FilePath, "el archivo crudo se conserva como pista de auditoría")
	assert.Len(t, f.store.saved, 1)

	items, err := f.countRepo.ListItems(ctx, countID)
	require.NoError(t, err)
	require.Len(t, items, 2, "tres escaneos del mismo barcode son un solo ítem")
	assert.Equal(t, "P-001", items[0].ProductCode)
	assert.Equal(t, "3", items[0].QuantityCounted.String())
	assert.Equal(t, "Café 500g", items[0].ProductName, "el ítem guarda la instantánea del producto")
	assert.Equal(t, "P-002", items[1].ProductCode)
	assert.Equal(t, "1", items[1].QuantityCounted.String())
}

func TestImport_BarcodeDesconocidoNoAborta(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)
	ctx := context.Background()

	imp, err := f.uc.Import(ctx, importInput("7701234,2\n9999999,5\n", entity.ImportFormatBarcodeQuantity))
	require.NoError(t, err, "un barcode sin producto no tumba el lote")

	assert.Equal(t, entity.ImportStatusCompleted, imp.Status, "algo entró, el lote queda completed")
	require.Len(t, imp.Errors, 1)
	assert.Equal(t, "9999999", imp.Errors[0].Barcode, "el error identifica el barcode, no una línea")
	assert.Zero(t, imp.Errors[0].Line)

	items, err := f.countRepo.ListItems(ctx, countID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].QuantityCounted.String())
}

func TestImport_ReimportarSumaSobreElItem(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)
	ctx := context.Background()

	_, err := f.uc.Import(ctx, importInput("7701234,2\n", entity.ImportFormatBarcodeQuantity))
	require.NoError(t, err)
	_, err = f.uc.Import(ctx, importInput("7701234,3\n", entity.ImportFormatBarcodeQuantity))
	require.NoError(t, err)

	items, err := f.countRepo.ListItems(ctx, countID)
	require.NoError(t, err)
	require.Len(t, items, 1, "la segunda importación no duplica el ítem")
	assert.Equal(t, "5", items[0].QuantityCounted.String(), "2 + 3 entre importaciones")

	imports, err := f.importRepo.ListByCount(ctx, countID)
	require.NoError(t, err)
	assert.Len(t, imports, 2, "cada intento deja su registro de auditoría")
}

func TestImport_TodoFallidoQuedaFailed(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)

	imp, err := f.uc.Import(context.Background(), importInput("sin_delimitador\notra_mala\n", entity.ImportFormatBarcodeQuantity))
	require.NoError(t, err, "las líneas malas no son un error del caso de uso")

	assert.Equal(t, entity.ImportStatusFailed, imp.Status, "cero éxitos con fallos es failed")
	assert.Equal(t, 0, imp.SuccessfulLines)
	assert.Equal(t, 2, imp.FailedLines)
	assert.Len(t, imp.Errors, 2)
}

func TestImport_ConteoCompletadoSeRechaza(t *testing.T) {
	now := time.Now()
	f := newImportFixture(entity.CountStatusCompleted)
	f.countRepo.counts[countID].CompletedAt = &now

	_, err := f.uc.Import(context.Background(), importInput("7701234\n", entity.ImportFormatBarcodeOnly))
	assert.ErrorIs(t, err, domain.ErrCountCompleted)

	assert.Empty(t, f.store.saved, "nada se guarda si el conteo no admite importaciones")
}

func TestImport_FormatoInvalido(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)

	_, err := f.uc.Import(context.Background(), importInput("7701234\n", "qr_dump"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ConteoInexistente(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)

	in := importInput("7701234\n", entity.ImportFormatBarcodeOnly)
	in.StockCountID = "count-fantasma"
	_, err := f.uc.Import(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImport_ListByCount(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)
	ctx := context.Background()

	_, err := f.uc.Import(ctx, importInput("7701234\n", entity.ImportFormatBarcodeOnly))
	require.NoError(t, err)

	imports, err := f.uc.ListByCount(ctx, companyID, countID)
	require.NoError(t, err)
	assert.Len(t, imports, 1)

	_, err = f.uc.ListByCount(ctx, companyID, "count-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La cantidad decimal de un lector con coma también llega entera al ítem.
func TestImport_CantidadDecimal(t *testing.T) {
	f := newImportFixture(entity.CountStatusInProgress)
	ctx := context.Background()

	in := importInput("7701234;2,5\n", entity.ImportFormatBarcodeQuantity)
	in.Delimiter = ";"
	_, err := f.uc.Import(ctx, in)
	require.NoError(t, err)

	items, err := f.countRepo.ListItems(ctx, countID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2.5", items[0].QuantityCounted.String())
}
