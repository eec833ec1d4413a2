package dto

import "github.com/shopspring/decimal"

// CartLineDTO línea del carrito que mantiene el cliente.
// Price y gstRate ausentes (null) se completan desde el catálogo; 0 es un valor.
type CartLineDTO struct {
	ProductID     string           `json:"productId"`
	ProductName   string           `json:"productName,omitempty"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"price,omitempty"`
	LineTotal     decimal.Decimal  `json:"total"`
	TaxPercentage *decimal.Decimal `json:"gstRate,omitempty"`
	HSNCode       string           `json:"hsnCode,omitempty"`
	Barcodes      string           `json:"barcodes,omitempty"`
}

// CartTotalsRequest body para POST /api/cart/totals.
// DiscountMode: "percent" (defecto) o "amount". TaxPercentage nil usa la tasa del sistema.
type CartTotalsRequest struct {
	Items         []CartLineDTO    `json:"items"`
	DiscountMode  string           `json:"discountMode"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	TaxPercentage *decimal.Decimal `json:"taxPercentage,omitempty"`
}

// CartAddItemRequest body para POST /api/cart/items.
type CartAddItemRequest struct {
	CartTotalsRequest
	ProductID string `json:"addProductId"`
	Quantity  int    `json:"addQuantity"`
}

// CartQuantityRequest body para POST /api/cart/quantity.
type CartQuantityRequest struct {
	CartTotalsRequest
	ProductID   string `json:"changeProductId"`
	NewQuantity int    `json:"newQuantity"`
}

// BackSolveRequest body para POST /api/cart/back-solve.
type BackSolveRequest struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	DesiredTotal decimal.Decimal `json:"desiredTotal"`
}

// BackSolveResponse descuento derivado del total editado.
type BackSolveResponse struct {
	DiscountAmount     string `json:"discountAmount"`
	DiscountPercentage string `json:"discountPercentage"`
}

// TotalsDTO totales del motor, ya formateados a 2 decimales.
type TotalsDTO struct {
	Subtotal                 string `json:"subtotal"`
	DiscountAmount           string `json:"discountAmount"`
	TaxableBase              string `json:"taxableBase"`
	TaxPercentage            string `json:"taxPercentage"`
	TaxAmount                string `json:"taxAmount"`
	Total                    string `json:"total"`
	EffectiveDiscountPercent string `json:"effectiveDiscountPercentage"`
}

// CartResponse carrito resultante con sus totales.
type CartResponse struct {
	Items  []CartLineDTO `json:"items"`
	Totals TotalsDTO     `json:"totals"`
}
