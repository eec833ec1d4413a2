package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
	"github.com/jhoicas/pos-billing-api/internal/domain"
)

func TestHSNCodeUseCase_CrearActualizarYBorrar(t *testing.T) {
	repo := newFakeHSNRepo()
	uc := usecase.NewHSNCodeUseCase(repo)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateHSNCodeRequest{Code: " 7113 ", Tax: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, "7113", out.Code)
	assert.NotEmpty(t, out.ID)

	// tasa cero es válida (exento)
	tax := decimal.Zero
	upd, err := uc.Update(ctx, out.ID, dto.UpdateHSNCodeRequest{Tax: &tax})
	require.NoError(t, err)
	assert.True(t, upd.Tax.IsZero())
	assert.Equal(t, "7113", upd.Code)

	list, err := uc.List(ctx, 0, -1)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, out.ID))
	_, err = uc.GetByID(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHSNCodeUseCase_ValidaEntrada(t *testing.T) {
	uc := usecase.NewHSNCodeUseCase(newFakeHSNRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateHSNCodeRequest{Code: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateHSNCodeRequest{Code: "7113", Tax: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateHSNCodeRequest{Code: "7113"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateHSNCodeRequest{Code: "7113"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateHSNCodeRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatchUseCase_CrearYActualizar(t *testing.T) {
	uc := usecase.NewBatchUseCase(newFakeBatchRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateBatchRequest{Place: "Vitrina"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(ctx, dto.CreateBatchRequest{BatchNumber: "L-01", Place: " Vitrina "})
	require.NoError(t, err)
	assert.Equal(t, "Vitrina", out.Place)

	place := "Bodega"
	upd, err := uc.Update(ctx, out.ID, dto.UpdateBatchRequest{Place: &place})
	require.NoError(t, err)
	assert.Equal(t, "L-01", upd.BatchNumber)
	assert.Equal(t, "Bodega", upd.Place)

	empty := ""
	_, err = uc.Update(ctx, out.ID, dto.UpdateBatchRequest{BatchNumber: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.Delete(ctx, "no-existe"), domain.ErrNotFound)
}
