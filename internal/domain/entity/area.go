package entity

import "time"

// Area representa una ubicación física de inventario (bodega, piso, zona).
type Area struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Location  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
