package dto

import "github.com/shopspring/decimal"

// SalesSummaryDTO totales de ventas del período (GET /api/analytics/summary).
type SalesSummaryDTO struct {
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	BillCount      int             `json:"bill_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
}

// TopProductDTO producto más vendido (GET /api/analytics/top-products).
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}
