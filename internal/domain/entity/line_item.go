package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de la factura (producto, cantidad, precio y total de línea).
// ProductName y UnitPrice son fotos tomadas al agregar al carrito; no se vuelven a consultar.
type LineItem struct {
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal // siempre Quantity × UnitPrice
	TaxPercentage decimal.Decimal // GST informativo de la línea; el impuesto cobrado usa la tasa de la factura
	HSNCode       string
	Barcodes      string
}

// ComputedTotal devuelve Quantity × UnitPrice sin mirar LineTotal.
func (l LineItem) ComputedTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
