package dto

import "github.com/shopspring/decimal"

// CheckoutItemRequest producto y cantidad a cobrar. Precio y datos se toman del catálogo.
type CheckoutItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest body para POST /api/checkout.
// DesiredTotal, si viene, reemplaza el descuento (total editado a mano).
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	DiscountMode  string                `json:"discountMode"`
	DiscountValue decimal.Decimal       `json:"discountValue"`
	DesiredTotal  *decimal.Decimal      `json:"desiredTotal,omitempty"`
	TaxPercentage *decimal.Decimal      `json:"taxPercentage,omitempty"`
	CustomerID    string                `json:"customerId,omitempty"`
	Customer      CustomerSnapshotDTO   `json:"customer"`
	StoreID       string                `json:"storeId,omitempty"`
	PaymentMethod string                `json:"paymentMethod"`
	Notes         string                `json:"notes,omitempty"`
	CreatedBy     string                `json:"createdBy,omitempty"`
	BillFormat    string                `json:"billFormat,omitempty"`
}
