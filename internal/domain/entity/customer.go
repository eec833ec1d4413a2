package entity

import "time"

// Customer representa un cliente registrado. Las facturas guardan una copia, no la referencia viva.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot devuelve la copia que se graba en la factura.
func (c *Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Address: c.Address}
}
