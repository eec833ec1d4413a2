package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de descuento.
const (
	DiscountPending  = "pending"
	DiscountApproved = "approved"
	DiscountRejected = "rejected"
)

// ValidDiscountStatus indica si el estado es uno de los soportados.
func ValidDiscountStatus(s string) bool {
	switch s {
	case DiscountPending, DiscountApproved, DiscountRejected:
		return true
	}
	return false
}

// DiscountRequest pedido de un cajero para aplicar un descuento en una factura.
// Un administrador lo aprueba o rechaza; ApprovedBy guarda quién resolvió.
type DiscountRequest struct {
	ID         string // DISC-<12 hex en mayúsculas>
	UserID     string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
	BillID     string
	Status     string
	ApprovedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
