package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es un entero global; la persistencia lo descuenta sin revalidar (puede quedar negativo).
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal // precio de venta
	Barcode       string          // uno o varios códigos separados por coma
	Stock         int
	TaxPercentage decimal.NullDecimal // GST propio; nulo = usar la tasa del sistema, 0 = exento
	HSNCode       string
	BatchID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TaxOr devuelve la tasa propia del producto o fallback si no tiene.
func (p *Product) TaxOr(fallback decimal.Decimal) decimal.Decimal {
	if p.TaxPercentage.Valid {
		return p.TaxPercentage.Decimal
	}
	return fallback
}

// NormalizeBarcodes junta códigos sueltos o separados por coma en una lista única y ordenada.
func NormalizeBarcodes(values ...string) string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		for _, code := range strings.Split(v, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}
