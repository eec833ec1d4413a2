package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

const (
	defaultTopN = 10
	maxTopN     = 100
	dateLayout  = "2006-01-02"
)

// AnalyticsUseCase reportes de ventas sobre la copia relacional de facturas.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// Summary totales del período con ticket promedio (total / facturas, sin redondear).
func (uc *AnalyticsUseCase) Summary(ctx context.Context, startStr, endStr string) (*dto.SalesSummaryDTO, error) {
	start, end, err := uc.parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}
	res, err := uc.analyticsRepo.GetSalesSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	avg := decimal.Zero
	if res.BillCount > 0 {
		avg = res.Total.Div(decimal.NewFromInt(int64(res.BillCount)))
	}
	return &dto.SalesSummaryDTO{
		StartDate:      start.Format(dateLayout),
		EndDate:        end.AddDate(0, 0, -1).Format(dateLayout),
		BillCount:      res.BillCount,
		Subtotal:       res.Subtotal,
		DiscountAmount: res.DiscountAmount,
		TaxAmount:      res.TaxAmount,
		Total:          res.Total,
		AverageTicket:  avg,
	}, nil
}

// TopProducts productos con más ingreso en el período. limit se acota a [1, 100].
func (uc *AnalyticsUseCase) TopProducts(ctx context.Context, startStr, endStr string, limit int) ([]dto.TopProductDTO, error) {
	start, end, err := uc.parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}
	rows, err := uc.analyticsRepo.GetTopProducts(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
		})
	}
	return out, nil
}

// parsePeriod devuelve [start, end) en días completos. Por defecto desde el primer día del mes hasta hoy.
func (uc *AnalyticsUseCase) parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	now := uc.now()
	loc := now.Location()

	if endStr == "" {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", domain.ErrInvalidInput)
		}
	}
	end = end.AddDate(0, 0, 1)

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", domain.ErrInvalidInput)
		}
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date: %w", domain.ErrInvalidInput)
	}
	return start, end, nil
}
