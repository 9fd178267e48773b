package entity

import "time"

// Estados de una importación masiva de conteo.
const (
	ImportStatusPending    = "pending"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// Formatos de archivo de importación.
const (
	ImportFormatBarcodeOnly     = "barcode_only"     // un barcode por línea, cantidad = 1
	ImportFormatBarcodeQuantity = "barcode_quantity" // barcode<delim>cantidad por línea
)

// ImportError es un error no fatal de una línea o de un barcode dentro de una
// importación; se acumula en la lista estructurada del registro, nunca aborta el lote.
type ImportError struct {
	Line    int    `json:"line,omitempty"`    // 0 en errores a nivel de barcode
	Barcode string `json:"barcode,omitempty"` // vacío en errores de línea
	Content string `json:"content,omitempty"` // línea cruda, tal cual llegó
	Message string `json:"message"`
}

// StockCountImport es la pista de auditoría de un intento de importación de
// archivo contra un conteo: contadores por línea, lista de errores y estado final.
type StockCountImport struct {
	ID              string
	CompanyID       string
	StockCountID    string
	UserID          string
	FileName        string
	FilePath        string // ruta opaca en el almacenamiento de archivos
	FileFormat      string
	Delimiter       string
	Status          string
	TotalLines      int
	ProcessedLines  int
	SuccessfulLines int
	FailedLines     int
	Errors          []ImportError
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// ValidImportFormat valida el formato contra el catálogo.
func ValidImportFormat(f string) bool {
	return f == ImportFormatBarcodeOnly || f == ImportFormatBarcodeQuantity
}
