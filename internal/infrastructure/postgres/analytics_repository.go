package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de ventas sobre la copia relacional de facturas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el repositorio de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesSummary totaliza las facturas emitidas en [startDate, endDate).
func (r *AnalyticsRepo) GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (*repository.SalesSummaryResult, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount_amount), 0),
		       COALESCE(SUM(tax_amount), 0),
		       COALESCE(SUM(total), 0)
		FROM bills
		WHERE issued_at >= $1 AND issued_at < $2`
	var res repository.SalesSummaryResult
	err := r.q.QueryRow(ctx, query, startDate, endDate).Scan(
		&res.BillCount, &res.Subtotal, &res.DiscountAmount, &res.TaxAmount, &res.Total,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &res, nil
}

// GetTopProducts productos con mayor ingreso en el rango.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT bi.product_id,
		       MAX(bi.product_name),
		       SUM(bi.quantity)::int,
		       SUM(bi.line_total)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.issued_at >= $1 AND b.issued_at < $2 AND bi.product_id <> ''
		GROUP BY bi.product_id
		ORDER BY SUM(bi.line_total) DESC, bi.product_id
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var list []repository.TopProductResult
	for rows.Next() {
		var p repository.TopProductResult
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
