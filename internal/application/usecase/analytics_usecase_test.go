package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

func TestAnalyticsUseCase_SummaryTicketPromedio(t *testing.T) {
	repo := &fakeAnalyticsRepo{summary: repository.SalesSummaryResult{
		BillCount: 4,
		Total:     decimal.RequireFromString("1000.10"),
	}}
	uc := usecase.NewAnalyticsUseCase(repo)

	out, err := uc.Summary(context.Background(), "2026-03-01", "2026-03-31")

	require.NoError(t, err)
	assert.Equal(t, "250.025", out.AverageTicket.String())
	assert.Equal(t, "2026-03-01", out.StartDate)
	assert.Equal(t, "2026-03-31", out.EndDate)
	assert.Equal(t, 1, repo.start.Day())
	assert.Equal(t, time.April, repo.end.Month(), "el fin es exclusivo: día siguiente")
}

func TestAnalyticsUseCase_SummarySinVentas(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(&fakeAnalyticsRepo{})

	out, err := uc.Summary(context.Background(), "2026-03-01", "2026-03-01")

	require.NoError(t, err)
	assert.True(t, out.AverageTicket.IsZero())
}

func TestAnalyticsUseCase_PeriodoInvalido(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(&fakeAnalyticsRepo{})

	_, err := uc.Summary(context.Background(), "2026-04-02", "2026-04-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.TopProducts(context.Background(), "01/04/2026", "", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyticsUseCase_TopProductsAcotaLimite(t *testing.T) {
	repo := &fakeAnalyticsRepo{top: []repository.TopProductResult{{ProductID: "p1", UnitsSold: 3}}}
	uc := usecase.NewAnalyticsUseCase(repo)

	out, err := uc.TopProducts(context.Background(), "2026-03-01", "2026-03-31", 5000)

	require.NoError(t, err)
	assert.Equal(t, 100, repo.limit)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].UnitsSold)

	_, err = uc.TopProducts(context.Background(), "2026-03-01", "2026-03-31", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.limit)
}
