package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

func TestAddItem_RechazaCuandoSuperaStock(t *testing.T) {
	// Línea existente con 8 unidades, stock 10: agregar 5 da 13 > 10.
	product := &entity.Product{ID: "p1", Name: "Anillo", Price: dec("100"), Stock: 10}
	cart := []entity.LineItem{line("p1", 8, "100")}

	out, err := billing.AddItem(cart, product, 5, dec("18"))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, out)
	assert.Equal(t, 8, cart[0].Quantity, "el carrito no debe cambiar")
}

func TestAddItem_SumaALineaExistente(t *testing.T) {
	product := &entity.Product{ID: "p1", Name: "Anillo", Price: dec("100"), Stock: 10}
	cart := []entity.LineItem{line("p1", 8, "100")}

	out, err := billing.AddItem(cart, product, 2, dec("18"))

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].Quantity)
	assert.Equal(t, "1000", out[0].LineTotal.String())
}

func TestAddItem_NuevaLineaCopiaDatosDelProducto(t *testing.T) {
	product := &entity.Product{ID: "p9", Name: "Collar", Price: dec("450.50"), Stock: 3, HSNCode: "7117", Barcode: "890123"}

	out, err := billing.AddItem(nil, product, 2, dec("18"))

	require.NoError(t, err)
	require.Len(t, out, 1)
	l := out[0]
	assert.Equal(t, "Collar", l.ProductName)
	assert.Equal(t, "901", l.LineTotal.String())
	assert.Equal(t, "18", l.TaxPercentage.String(), "sin tasa propia usa la del sistema")
	assert.Equal(t, "7117", l.HSNCode)
	assert.Equal(t, "890123", l.Barcodes)
}

func TestAddItem_UsaTasaDelProducto(t *testing.T) {
	product := &entity.Product{ID: "p9", Name: "Collar", Price: dec("10"), Stock: 3, TaxPercentage: decimal.NewNullDecimal(dec("3"))}

	out, err := billing.AddItem(nil, product, 1, dec("18"))

	require.NoError(t, err)
	assert.Equal(t, "3", out[0].TaxPercentage.String())
}

func TestAddItem_TasaPropiaCeroEsExento(t *testing.T) {
	// Un producto exento declara 0%; no debe tomar la tasa del sistema.
	product := &entity.Product{ID: "p5", Name: "Moneda", Price: dec("10"), Stock: 3, TaxPercentage: decimal.NewNullDecimal(decimal.Zero)}

	out, err := billing.AddItem(nil, product, 1, dec("18"))

	require.NoError(t, err)
	assert.True(t, out[0].TaxPercentage.IsZero())
}

func TestAddItem_EntradaInvalida(t *testing.T) {
	_, err := billing.AddItem(nil, nil, 1, dec("18"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = billing.AddItem(nil, &entity.Product{ID: "x", Stock: 5}, 0, dec("18"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyQuantityChange_Acepta(t *testing.T) {
	cart := sampleCart()

	out, err := billing.ApplyQuantityChange(cart, "p1", 4, 10)

	require.NoError(t, err)
	assert.Equal(t, 4, out[0].Quantity)
	assert.Equal(t, "400", out[0].LineTotal.String())
	assert.Equal(t, "100", out[0].UnitPrice.String(), "el precio unitario no cambia")
	assert.Equal(t, 2, cart[0].Quantity, "la entrada no se modifica")
}

func TestApplyQuantityChange_RechazaSinStock(t *testing.T) {
	cart := sampleCart()

	out, err := billing.ApplyQuantityChange(cart, "p1", 11, 10)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, out)
}

func TestApplyQuantityChange_CeroEliminaLinea(t *testing.T) {
	cart := sampleCart()

	out, err := billing.ApplyQuantityChange(cart, "p1", 0, 10)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ProductID)
	assert.Len(t, cart, 2)
}

func TestApplyQuantityChange_NegativoEliminaAunSinStock(t *testing.T) {
	out, err := billing.ApplyQuantityChange(sampleCart(), "p2", -3, 0)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ProductID)
}

func TestApplyQuantityChange_LineaInexistente(t *testing.T) {
	_, err := billing.ApplyQuantityChange(sampleCart(), "nope", 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
