package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain"
)

// Estados de una sesión de conteo. La máquina de estados es monótona:
// pending -> in_progress -> completed, sin transiciones de regreso.
const (
	CountStatusPending    = "pending"
	CountStatusInProgress = "in_progress"
	CountStatusCompleted  = "completed"
)

// StockCount es una pasada física de conteo dentro de una auditoría, opcionalmente
// acotada a un área. CountNumber es único dentro de (auditoría, área).
type StockCount struct {
	ID          string
	CompanyID   string
	AuditID     string
	AreaID      *string
	CounterID   string // usuario que cuenta
	CountNumber int
	Status      string
	StartedAt   *time.Time
	CompletedAt *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Start transiciona pending -> in_progress y estampa StartedAt.
func (c *StockCount) Start(now time.Time) error {
	if c.Status != CountStatusPending {
		return domain.ErrConflict
	}
	c.Status = CountStatusInProgress
	c.StartedAt = &now
	c.UpdatedAt = now
	return nil
}

// Complete cierra el conteo. Exige al menos un ítem y que no esté ya completado.
func (c *StockCount) Complete(now time.Time, itemCount int) error {
	if c.Status == CountStatusCompleted {
		return domain.ErrCountCompleted
	}
	if itemCount < 1 {
		return domain.ErrCountEmpty
	}
	c.Status = CountStatusCompleted
	c.CompletedAt = &now
	c.UpdatedAt = now
	return nil
}

// IsEditable indica si el conteo admite cambios en sus ítems (pending o in_progress).
func (c *StockCount) IsEditable() bool {
	return c.Status == CountStatusPending || c.Status == CountStatusInProgress
}

// IsDeletable indica si el conteo puede borrarse (cualquier estado salvo completed).
func (c *StockCount) IsDeletable() bool {
	return c.Status != CountStatusCompleted
}

// StockCountItem es una línea de conteo. ProductCode es una instantánea del
// código/barcode al momento de contar, NO una llave foránea: los reportes
// cruzan por igualdad de cadena, de modo que el conteo conserva el código y el
// nombre aunque el producto cambie después.
type StockCountItem struct {
	ID              string
	StockCountID    string
	ProductCode     string
	ProductName     string
	QuantityCounted decimal.Decimal
	Unit            string
	Location        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
