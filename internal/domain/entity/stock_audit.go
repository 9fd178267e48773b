package entity

import "time"

// Estados de una auditoría de inventario.
const (
	AuditStatusPlanned    = "planned"
	AuditStatusInProgress = "in_progress"
	AuditStatusCompleted  = "completed"
	AuditStatusCancelled  = "cancelled"
)

// StockAudit es una campaña de conteo físico: agrupa 1..N sesiones de conteo
// (StockCount) y define cuántos conteos por área se exigen.
type StockAudit struct {
	ID             string
	CompanyID      string
	Name           string
	Description    string
	Status         string
	RequiredCounts int    // conteos exigidos por área
	ResponsibleID  string // usuario responsable de la campaña
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsEditable indica si la auditoría admite cambios (solo planned o in_progress).
func (a *StockAudit) IsEditable() bool {
	return a.Status == AuditStatusPlanned || a.Status == AuditStatusInProgress
}

// IsDeletable indica si la auditoría puede borrarse (solo planned).
func (a *StockAudit) IsDeletable() bool {
	return a.Status == AuditStatusPlanned
}

// ValidAuditStatus valida el estado contra el catálogo.
func ValidAuditStatus(s string) bool {
	switch s {
	case AuditStatusPlanned, AuditStatusInProgress, AuditStatusCompleted, AuditStatusCancelled:
		return true
	}
	return false
}
