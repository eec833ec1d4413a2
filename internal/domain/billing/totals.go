package billing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DiscountMode indica cómo interpretar el valor de descuento.
type DiscountMode string

const (
	DiscountPercent DiscountMode = "percent"
	DiscountFlat    DiscountMode = "amount"
)

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// ParseDiscountMode valida el modo de descuento. Vacío equivale a porcentaje.
func ParseDiscountMode(s string) (DiscountMode, error) {
	switch DiscountMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DiscountPercent:
		return DiscountPercent, nil
	case DiscountFlat:
		return DiscountFlat, nil
	}
	return "", fmt.Errorf("modo de descuento %q: %w", s, domain.ErrInvalidInput)
}

// Totals resultado del motor de totales. Sin redondeo: se redondea solo al mostrar.
type Totals struct {
	Subtotal                 decimal.Decimal
	DiscountAmount           decimal.Decimal
	TaxableBase              decimal.Decimal
	TaxAmount                decimal.Decimal
	Total                    decimal.Decimal
	EffectiveDiscountPercent decimal.Decimal
}

// ComputeTotals calcula subtotal, descuento, impuesto y total del carrito.
//
//	Descuento = subtotal × valor / 100 (percent) o valor (amount), acotado a [0, subtotal]
//	Base      = max(0, subtotal - descuento)
//	Impuesto  = base × tasa / 100
//	Total     = base + impuesto
//
// Los totales de línea se recalculan siempre desde cantidad × precio.
func ComputeTotals(items []entity.LineItem, mode DiscountMode, discountValue, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.ComputedTotal())
	}
	if !subtotal.GreaterThan(decimal.Zero) {
		return Totals{
			Subtotal:                 decimal.Zero,
			DiscountAmount:           decimal.Zero,
			TaxableBase:              decimal.Zero,
			TaxAmount:                decimal.Zero,
			Total:                    decimal.Zero,
			EffectiveDiscountPercent: decimal.Zero,
		}
	}

	var discount decimal.Decimal
	if mode == DiscountFlat {
		discount = discountValue
	} else {
		discount = subtotal.Mul(discountValue).Div(hundred)
	}
	discount = clamp(discount, decimal.Zero, subtotal)

	base := decimal.Max(decimal.Zero, subtotal.Sub(discount))
	tax := base.Mul(taxRatePercent).Div(hundred)

	return Totals{
		Subtotal:                 subtotal,
		DiscountAmount:           discount,
		TaxableBase:              base,
		TaxAmount:                tax,
		Total:                    base.Add(tax),
		EffectiveDiscountPercent: discount.Div(subtotal).Mul(hundred),
	}
}

// BackSolveDiscountFromTotal deriva el descuento cuando el usuario edita el total a mano.
// El impuesto recibido es el calculado antes de la edición y no se recalcula sobre la nueva
// base: el total resultante puede no coincidir con un ComputeTotals posterior.
func BackSolveDiscountFromTotal(subtotal, taxAmountAtCurrentRate, desiredTotal decimal.Decimal) (discountAmount, discountPercent decimal.Decimal) {
	expected := subtotal.Add(taxAmountAtCurrentRate)
	discountAmount = decimal.Max(decimal.Zero, expected.Sub(desiredTotal))
	if subtotal.GreaterThan(decimal.Zero) {
		discountPercent = discountAmount.Div(subtotal).Mul(hundred)
	} else {
		discountPercent = decimal.Zero
	}
	return discountAmount, discountPercent
}

// SettleTotals valida los totales de una factura armada fuera del motor (p. ej. con total
// editado). El descuento se acota a [0, subtotal] y debe cumplirse
//
//	Total = max(0, subtotal - descuento) + impuesto
//
// con tolerancia de un centavo; el total guardado es siempre el recalculado. Un total en
// cero se toma como no enviado y se completa. El impuesto no se contrasta con la tasa porque
// un total editado lo conserva sobre el subtotal sin descuento.
func SettleTotals(subtotal, discount, tax, total decimal.Decimal) (Totals, error) {
	if subtotal.IsNegative() || tax.IsNegative() || total.IsNegative() {
		return Totals{}, fmt.Errorf("totales negativos: %w", domain.ErrInvalidInput)
	}
	discount = clamp(discount, decimal.Zero, subtotal)
	base := decimal.Max(decimal.Zero, subtotal.Sub(discount))
	expected := base.Add(tax)
	if !total.IsZero() && total.Sub(expected).Abs().GreaterThan(cent) {
		return Totals{}, fmt.Errorf("total %s no coincide con subtotal %s - descuento %s + impuesto %s = %s: %w",
			FormatAmount(total), FormatAmount(subtotal), FormatAmount(discount), FormatAmount(tax), FormatAmount(expected), domain.ErrInvalidInput)
	}
	pct := decimal.Zero
	if subtotal.GreaterThan(decimal.Zero) {
		pct = discount.Div(subtotal).Mul(hundred)
	}
	return Totals{
		Subtotal:                 subtotal,
		DiscountAmount:           discount,
		TaxableBase:              base,
		TaxAmount:                tax,
		Total:                    expected,
		EffectiveDiscountPercent: pct,
	}, nil
}

// RecomputeLines devuelve una copia de las líneas con LineTotal recalculado.
func RecomputeLines(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, it := range items {
		it.LineTotal = it.ComputedTotal()
		out[i] = it
	}
	return out
}

// FormatAmount redondea a 2 decimales (mitad hacia arriba) para mostrar.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
