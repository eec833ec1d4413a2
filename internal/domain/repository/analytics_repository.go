package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult agregado crudo de ventas en un período.
// Lo produce la DB; el use case lo convierte en DTO.
type SalesSummaryResult struct {
	BillCount      int
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// TopProductResult producto más vendido en el período (por ingreso de línea).
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// AnalyticsRepository consultas de lectura sobre facturas relacionales.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesSummary usa COALESCE para devolver cero si no hay facturas en el período.
	GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (*SalesSummaryResult, error)

	// GetTopProducts devuelve como máximo limit productos ordenados por ingreso descendente.
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
}
