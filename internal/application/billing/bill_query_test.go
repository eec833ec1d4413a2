package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingapp "github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

func TestBillQuery_ListMasRecientesPrimero(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeBillStore{steps: &steps{}, bills: []*entity.Bill{
		{ID: "a", Timestamp: base},
		{ID: "c", Timestamp: base.Add(2 * time.Hour)},
		{ID: "b", Timestamp: base.Add(time.Hour)},
	}}
	uc := billingapp.NewBillQueryUseCase(store)

	all, err := uc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	ids := []string{}
	for _, b := range all.Items {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
	assert.Equal(t, 3, all.Page.Total)

	page, err := uc.List(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)

	empty, err := uc.List(context.Background(), 10, 50)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}

func TestBillQuery_Get(t *testing.T) {
	store := &fakeBillStore{steps: &steps{}, bills: []*entity.Bill{{ID: "inv-1"}}}
	uc := billingapp.NewBillQueryUseCase(store)

	b, err := uc.Get(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", b.ID)

	_, err = uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
