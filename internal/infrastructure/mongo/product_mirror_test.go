package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

func TestDocRoundTripConservaDecimales(t *testing.T) {
	in := &entity.Product{
		ID:            "p1",
		Name:          "Anillo",
		Price:         decimal.RequireFromString("1234.56"),
		Stock:         -2,
		TaxPercentage: decimal.NewNullDecimal(decimal.RequireFromString("3")),
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	doc, err := toDoc(in)
	require.NoError(t, err)
	out, err := fromDoc(doc)
	require.NoError(t, err)

	assert.True(t, in.Price.Equal(out.Price))
	require.True(t, out.TaxPercentage.Valid)
	assert.True(t, in.TaxPercentage.Decimal.Equal(out.TaxPercentage.Decimal))
	assert.Equal(t, -2, out.Stock)
}

func TestFromDoc_DecimalVacioEsCero(t *testing.T) {
	out, err := fromDoc(productDoc{ID: "p1"})
	require.NoError(t, err)
	assert.True(t, out.Price.IsZero())
	assert.False(t, out.TaxPercentage.Valid, "sin tasa guardada usa la del sistema")
}

func TestDocRoundTrip_TasaCeroSeConserva(t *testing.T) {
	in := &entity.Product{ID: "p3", Name: "Moneda", TaxPercentage: decimal.NewNullDecimal(decimal.Zero)}

	doc, err := toDoc(in)
	require.NoError(t, err)
	require.NotNil(t, doc.TaxPercentage)
	out, err := fromDoc(doc)
	require.NoError(t, err)

	assert.True(t, out.TaxPercentage.Valid, "0 es exento, no ausente")
	assert.True(t, out.TaxPercentage.Decimal.IsZero())
}

func TestDecrementModels(t *testing.T) {
	models := decrementModels(map[string]int{"p1": 3, "": 1, "p2": 0})

	require.Len(t, models, 1)
	m, ok := models[0].(*mongo.UpdateOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.M{"_id": "p1"}, m.Filter)
	update := m.Update.(bson.M)
	assert.Equal(t, bson.M{"stock": int64(-3)}, update["$inc"])
	assert.Nil(t, m.Upsert, "no se crean productos")
}
