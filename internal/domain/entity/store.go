package entity

import "time"

// Store representa una tienda o sucursal donde se emiten facturas.
type Store struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
