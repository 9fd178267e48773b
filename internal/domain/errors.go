package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock disponible insuficiente")
	ErrCountCompleted    = errors.New("el conteo ya fue completado")
	ErrCountEmpty        = errors.New("el conteo no tiene ítems")
	ErrAuditNotEditable  = errors.New("la auditoría no admite cambios en su estado actual")
)
