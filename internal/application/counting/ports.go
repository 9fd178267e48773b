package counting

import (
	"context"

	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// ImportTxRunner ejecuta el lote completo de una importación dentro de una
// transacción: registro de importación, upserts de ítems y estado final se
// confirman juntos o no se confirma nada.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(
		countRepo repository.StockCountRepository,
		importRepo repository.StockCountImportRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ItemsTxRunner ejecuta el reemplazo completo de los ítems de un conteo dentro
// de una transacción: el borrado de la lista vieja y las inserciones de la
// nueva se confirman juntos, nunca queda un estado intermedio.
type ItemsTxRunner interface {
	RunItems(ctx context.Context, fn func(
		countRepo repository.StockCountRepository,
	) error) error
}

// FileStore guarda el archivo crudo de una importación y devuelve su ruta
// opaca; el registro de importación la conserva como pista de auditoría.
type FileStore interface {
	Save(ctx context.Context, companyID, fileName string, content []byte) (string, error)
}
