package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

func TestDiscountUseCase_CreaPendienteYAvisa(t *testing.T) {
	repo, notify := newFakeDiscountRepo(), &fakeNotifier{}
	uc := usecase.NewDiscountUseCase(repo, notify, nil)

	out, err := uc.Create(context.Background(), dto.CreateDiscountRequest{
		Percentage: decimal.NewFromInt(10), Amount: decimal.NewFromInt(120), BillID: "INV-1",
	}, "u-cajero")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.ID, "DISC-"))
	assert.Len(t, out.ID, len("DISC-")+12)
	assert.Equal(t, entity.DiscountPending, out.Status)
	assert.Equal(t, "u-cajero", out.UserID)
	require.Contains(t, repo.items, out.ID)

	require.Len(t, notify.lines, 1)
	assert.Equal(t, "notifications|DISCOUNT_REQUEST: Discount request "+out.ID+
		" by user u-cajero for bill INV-1 (10%, amount ₹120.00)", notify.lines[0])
}

func TestDiscountUseCase_AvisoFallidoNoFallaLaSolicitud(t *testing.T) {
	repo := newFakeDiscountRepo()
	uc := usecase.NewDiscountUseCase(repo, &fakeNotifier{err: errBoom}, nil)

	out, err := uc.Create(context.Background(), dto.CreateDiscountRequest{
		UserID: "u-otro", Percentage: decimal.NewFromInt(5),
	}, "u-cajero")

	require.NoError(t, err)
	assert.Equal(t, "u-otro", out.UserID)
	assert.Contains(t, repo.items, out.ID)
}

func TestDiscountUseCase_RechazaPorcentajeFueraDeRango(t *testing.T) {
	repo := newFakeDiscountRepo()
	uc := usecase.NewDiscountUseCase(repo, nil, nil)
	ctx := context.Background()

	for _, in := range []dto.CreateDiscountRequest{
		{Percentage: decimal.NewFromInt(101)},
		{Percentage: decimal.NewFromInt(-1)},
		{Amount: decimal.NewFromInt(-5)},
		{},
	} {
		_, err := uc.Create(ctx, in, "u1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, repo.items)
}

func TestDiscountUseCase_AprobarRegistraAprobador(t *testing.T) {
	repo := newFakeDiscountRepo(&entity.DiscountRequest{ID: "DISC-1", UserID: "u1", Status: entity.DiscountPending})
	uc := usecase.NewDiscountUseCase(repo, nil, nil)
	ctx := context.Background()

	out, err := uc.UpdateStatus(ctx, "DISC-1", dto.DiscountStatusRequest{Status: "Approved"}, "u-admin")
	require.NoError(t, err)
	assert.Equal(t, entity.DiscountApproved, out.Status)
	assert.Equal(t, "u-admin", repo.items["DISC-1"].ApprovedBy)

	// volver a pendiente limpia el aprobador
	out, err = uc.UpdateStatus(ctx, "DISC-1", dto.DiscountStatusRequest{Status: "pending"}, "u-admin")
	require.NoError(t, err)
	assert.Empty(t, out.ApprovedBy)

	_, err = uc.UpdateStatus(ctx, "DISC-1", dto.DiscountStatusRequest{Status: "cancelado"}, "u-admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStatus(ctx, "DISC-9", dto.DiscountStatusRequest{Status: "rejected"}, "u-admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscountUseCase_BorraVarias(t *testing.T) {
	repo := newFakeDiscountRepo(
		&entity.DiscountRequest{ID: "DISC-1"},
		&entity.DiscountRequest{ID: "DISC-2"},
		&entity.DiscountRequest{ID: "DISC-3"},
	)
	uc := usecase.NewDiscountUseCase(repo, nil, nil)
	ctx := context.Background()

	out, err := uc.Delete(ctx, dto.DeleteDiscountsRequest{IDs: []string{"DISC-1", " DISC-2 ", "DISC-9"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Deleted)
	assert.Len(t, repo.items, 1)

	_, err = uc.Delete(ctx, dto.DeleteDiscountsRequest{IDs: []string{" "}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Delete(ctx, dto.DeleteDiscountsRequest{IDs: []string{"DISC-9"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscountUseCase_ListaRecientesPrimero(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeDiscountRepo(
		&entity.DiscountRequest{ID: "DISC-A", CreatedAt: old},
		&entity.DiscountRequest{ID: "DISC-B", CreatedAt: old.Add(time.Hour)},
	)
	uc := usecase.NewDiscountUseCase(repo, nil, nil)

	list, err := uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "DISC-B", list.Items[0].ID)
}
