package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDiscountRequest body de POST /api/discounts. UserID vacío toma el usuario del token.
type CreateDiscountRequest struct {
	UserID     string          `json:"userId"`
	Percentage decimal.Decimal `json:"discount"`
	Amount     decimal.Decimal `json:"discountAmount"`
	BillID     string          `json:"billId"`
}

// DiscountStatusRequest body de PUT /api/discounts/:id/status.
type DiscountStatusRequest struct {
	Status string `json:"status"`
}

// DeleteDiscountsRequest body de DELETE /api/discounts.
type DeleteDiscountsRequest struct {
	IDs []string `json:"ids"`
}

// DeleteDiscountsResponse cantidad de solicitudes borradas.
type DeleteDiscountsResponse struct {
	Deleted int64 `json:"deleted"`
}

// DiscountResponse salida de una solicitud de descuento.
type DiscountResponse struct {
	ID         string          `json:"discountId"`
	UserID     string          `json:"userId"`
	Percentage decimal.Decimal `json:"discount"`
	Amount     decimal.Decimal `json:"discountAmount"`
	BillID     string          `json:"billId,omitempty"`
	Status     string          `json:"status"`
	ApprovedBy string          `json:"approvedBy,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// DiscountListResponse lista paginada de solicitudes.
type DiscountListResponse struct {
	Items []DiscountResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
