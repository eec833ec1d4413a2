package jsonstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/jsonstore"
)

func TestSettingsStore_DefaultsSinArchivo(t *testing.T) {
	s := jsonstore.NewSettingsStore(t.TempDir(), dec("18"))

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "18", got.TaxPercentage.String())
	assert.Len(t, got.BillFormats, 5)
	assert.True(t, got.BillFormats[entity.FormatThermal58mm].AutoHeight())
}

func TestSettingsStore_GuardaYLee(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.NewSettingsStore(dir, dec("18"))
	ctx := context.Background()

	in := entity.DefaultSettings(dec("12"))
	in.CompanyName = "Joyería Sol"
	in.GSTIN = "GST1"
	delete(in.BillFormats, entity.FormatA5)
	in.BillFormats["Etiqueta"] = entity.BillFormat{Width: dec("50"), Height: dec("30"), Unit: "mm"}
	require.NoError(t, s.Save(ctx, &in))

	got, err := jsonstore.NewSettingsStore(dir, dec("5")).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12", got.TaxPercentage.String())
	assert.Equal(t, "Joyería Sol", got.CompanyName)
	assert.Equal(t, "GST1", got.GSTIN)
	assert.Equal(t, "30", got.BillFormats["Etiqueta"].Height.String())
	assert.Contains(t, got.BillFormats, entity.FormatA5, "los formatos de fábrica se completan")
	assert.True(t, got.BillFormats[entity.FormatThermal80mm].AutoHeight())
}
