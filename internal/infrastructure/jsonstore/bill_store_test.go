package jsonstore_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/jsonstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bill(id string) *entity.Bill {
	return &entity.Bill{
		ID:            id,
		Customer:      entity.CustomerSnapshot{Name: "Ana", Phone: "555"},
		Items:         []entity.LineItem{{ProductID: "p1", ProductName: "Anillo", Quantity: 2, UnitPrice: dec("100"), LineTotal: dec("200"), TaxPercentage: dec("18")}},
		Subtotal:      dec("200"),
		TaxPercentage: dec("18"),
		TaxAmount:     dec("36"),
		Total:         dec("236"),
		PaymentMethod: entity.PaymentCard,
		Timestamp:     time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
		CreatedBy:     "u1",
		BillFormat:    entity.FormatA4,
	}
}

func TestBillStore_ArchivoInexistenteEsVacio(t *testing.T) {
	s := jsonstore.NewBillStore(t.TempDir(), true)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	got, err := s.GetByID(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBillStore_AppendYLectura(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.NewBillStore(dir, true)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, bill("inv-1")))
	require.NoError(t, s.Append(ctx, bill("inv-2")))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "inv-1", all[0].ID)

	got, err := s.GetByID(ctx, "inv-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "236", got.Total.String())
	assert.Equal(t, "Ana", got.Customer.Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Timestamp.Equal(bill("x").Timestamp))

	// el documento en disco es una lista JSON válida con claves camelCase
	data, err := os.ReadFile(filepath.Join(dir, jsonstore.BillsFile))
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw[0], "paymentMethod")
	assert.Contains(t, raw[0], "createdBy")
}

func TestBillStore_RechazaDuplicado(t *testing.T) {
	s := jsonstore.NewBillStore(t.TempDir(), true)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, bill("inv-1")))
	err := s.Append(ctx, bill("inv-1"))

	require.ErrorIs(t, err, domain.ErrDuplicate)
	all, _ := s.ListAll(ctx)
	assert.Len(t, all, 1)
}

func TestBillStore_DuplicadoPermitidoSiSeConfigura(t *testing.T) {
	s := jsonstore.NewBillStore(t.TempDir(), false)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, bill("inv-1")))
	require.NoError(t, s.Append(ctx, bill("inv-1")))

	all, _ := s.ListAll(ctx)
	assert.Len(t, all, 2)
}

func TestBillStore_LeeFormatoHistoricoYLoConserva(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"ID": "old-1", "customer_name": "Luis", "payment_method": "cash",
		"items": [{"product_id": "p9", "name": "Aro", "quantity": 1, "unit_price": "40"}],
		"total": "40", "timestamp": "2023-12-31T23:59:59.000Z", "extra_field": true}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonstore.BillsFile), []byte(legacy), 0o644))
	s := jsonstore.NewBillStore(dir, true)
	ctx := context.Background()

	err := s.Append(ctx, bill("old-1"))
	require.ErrorIs(t, err, domain.ErrDuplicate, "el ID histórico se reconoce")

	require.NoError(t, s.Append(ctx, bill("inv-1")))
	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Luis", all[0].Customer.Name)
	assert.Equal(t, "p9", all[0].Items[0].ProductID)

	data, err := os.ReadFile(filepath.Join(dir, jsonstore.BillsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "extra_field", "las entradas existentes no se reescriben")
}

func TestBillStore_ArchivoCorruptoFallaSinTocarlo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, jsonstore.BillsFile)
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o644))
	s := jsonstore.NewBillStore(dir, true)

	err := s.Append(context.Background(), bill("inv-1"))

	require.Error(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "{no es json", string(data))
}
