package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineTaxShares_SumanElImpuestoDeLaFactura(t *testing.T) {
	// Tasa de factura 18% sobre base con descuento; las líneas tienen tasas propias distintas.
	b := &entity.Bill{
		Items: []entity.LineItem{
			{Quantity: 1, UnitPrice: dec("100"), TaxPercentage: dec("3")},
			{Quantity: 2, UnitPrice: dec("50"), TaxPercentage: dec("18")},
			{Quantity: 1, UnitPrice: dec("33.33"), TaxPercentage: dec("0")},
		},
		TaxAmount: dec("41.39"),
	}

	shares := b.LineTaxShares()

	assert.Len(t, shares, 3)
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	assert.True(t, sum.Equal(b.TaxAmount), "suma %s", sum)
	assert.True(t, shares[0].Equal(shares[1]), "mismo total de línea, misma parte")
}

func TestLineTaxShares_SinImpuestoOSinLineas(t *testing.T) {
	assert.Empty(t, (&entity.Bill{}).LineTaxShares())

	b := &entity.Bill{Items: []entity.LineItem{{Quantity: 1, UnitPrice: dec("10")}}}
	assert.True(t, b.LineTaxShares()[0].IsZero())
}

func TestNormalizeBarcodes(t *testing.T) {
	assert.Equal(t, "111,222,333", entity.NormalizeBarcodes("333, 111", "", "222,111,"))
	assert.Empty(t, entity.NormalizeBarcodes(" , "))
}
