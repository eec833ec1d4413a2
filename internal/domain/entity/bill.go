package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

// UnknownCreator se usa cuando la factura llega sin usuario creador.
const UnknownCreator = "unknown creator"

// ValidPaymentMethod indica si el método de pago es uno de los soportados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// CustomerSnapshot copia de los datos del cliente al momento del cobro (no es FK viva).
type CustomerSnapshot struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
}

// Bill representa una venta finalizada. Se crea una sola vez y no se modifica después.
// Los datos de empresa y tienda son una foto de la configuración vigente al cobrar.
type Bill struct {
	ID                 string // generado por el cliente o "inv-<hex>"; unicidad no garantizada por el servidor
	StoreID            string
	StoreName          string
	StoreAddress       string
	Customer           CustomerSnapshot
	Items              []LineItem
	Subtotal           decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TaxPercentage      decimal.Decimal
	TaxAmount          decimal.Decimal
	Total              decimal.Decimal
	PaymentMethod      string
	Timestamp          time.Time
	Notes              string
	CreatedBy          string
	GSTIN              string
	CompanyName        string
	CompanyAddress     string
	CompanyPhone       string
	CompanyEmail       string
	BillFormat         string
}

// QuantityByProduct agrega cantidades por producto (las líneas sin ProductID se ignoran).
func (b *Bill) QuantityByProduct() map[string]int {
	out := make(map[string]int)
	for _, it := range b.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		out[it.ProductID] += it.Quantity
	}
	return out
}

// LineTaxShares reparte TaxAmount entre las líneas en proporción a su total, a 4 decimales.
// La última línea absorbe el residuo, así la suma es exactamente TaxAmount.
func (b *Bill) LineTaxShares() []decimal.Decimal {
	out := make([]decimal.Decimal, len(b.Items))
	if len(b.Items) == 0 {
		return out
	}
	subtotal := decimal.Zero
	for _, it := range b.Items {
		subtotal = subtotal.Add(it.ComputedTotal())
	}
	assigned := decimal.Zero
	last := len(b.Items) - 1
	for i, it := range b.Items[:last] {
		share := decimal.Zero
		if subtotal.GreaterThan(decimal.Zero) {
			share = b.TaxAmount.Mul(it.ComputedTotal()).Div(subtotal).Round(4)
		}
		out[i] = share
		assigned = assigned.Add(share)
	}
	out[last] = b.TaxAmount.Sub(assigned)
	return out
}
