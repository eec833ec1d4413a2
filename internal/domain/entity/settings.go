package entity

import "github.com/shopspring/decimal"

// Nombres de formatos de factura incluidos por defecto.
const (
	FormatA4          = "A4"
	FormatA5          = "A5"
	FormatThermal80mm = "Thermal_80mm"
	FormatThermal58mm = "Thermal_58mm"
	FormatCustom      = "Custom"
)

// Margins márgenes de impresión en la unidad del formato.
type Margins struct {
	Top    decimal.Decimal
	Bottom decimal.Decimal
	Left   decimal.Decimal
	Right  decimal.Decimal
}

// BillFormat dimensiones de papel para el renderizador de recibos.
// Height cero significa "auto" (rollo térmico).
type BillFormat struct {
	Width   decimal.Decimal
	Height  decimal.Decimal
	Margins Margins
	Unit    string
}

// AutoHeight indica si el alto es variable (rollo térmico).
func (f BillFormat) AutoHeight() bool {
	return f.Height.IsZero()
}

// IsThermal indica si el formato corresponde a una impresora térmica.
func (f BillFormat) IsThermal() bool {
	return f.AutoHeight()
}

// SystemSettings configuración de la empresa usada para sellar cada factura nueva.
// No se versiona: la foto guardada en cada Bill es el único histórico.
type SystemSettings struct {
	GSTIN          string
	TaxPercentage  decimal.Decimal
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	BillFormats    map[string]BillFormat
}

func uniformMargins(v int64) Margins {
	d := decimal.NewFromInt(v)
	return Margins{Top: d, Bottom: d, Left: d, Right: d}
}

// DefaultBillFormats tabla de formatos de papel incluida de fábrica.
func DefaultBillFormats() map[string]BillFormat {
	mm := func(w, h, m int64) BillFormat {
		return BillFormat{Width: decimal.NewFromInt(w), Height: decimal.NewFromInt(h), Margins: uniformMargins(m), Unit: "mm"}
	}
	return map[string]BillFormat{
		FormatA4:          mm(210, 297, 20),
		FormatA5:          mm(148, 210, 15),
		FormatThermal80mm: mm(80, 0, 5),
		FormatThermal58mm: mm(58, 0, 3),
		FormatCustom:      mm(210, 297, 20),
	}
}

// DefaultSettings valores iniciales cuando todavía no hay configuración guardada.
func DefaultSettings(taxPercentage decimal.Decimal) SystemSettings {
	return SystemSettings{
		TaxPercentage: taxPercentage,
		BillFormats:   DefaultBillFormats(),
	}
}

// Stamp copia los datos de empresa en la factura (foto al momento del cobro).
func (s SystemSettings) Stamp(b *Bill) {
	b.GSTIN = s.GSTIN
	b.CompanyName = s.CompanyName
	b.CompanyAddress = s.CompanyAddress
	b.CompanyPhone = s.CompanyPhone
	b.CompanyEmail = s.CompanyEmail
}
