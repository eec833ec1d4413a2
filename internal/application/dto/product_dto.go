package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// TaxPercentage nil deja el producto con la tasa del sistema; 0 lo deja exento.
type CreateProductRequest struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	Barcode       string           `json:"barcode"`
	Stock         int              `json:"stock"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
	HSNCode       string           `json:"hsn_code"`
	BatchID       string           `json:"batch_id,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (campos nil no cambian).
// ClearTaxPercentage vuelve el producto a la tasa del sistema.
type UpdateProductRequest struct {
	Name               *string          `json:"name"`
	Price              *decimal.Decimal `json:"price"`
	Barcode            *string          `json:"barcode"`
	Stock              *int             `json:"stock"`
	TaxPercentage      *decimal.Decimal `json:"tax_percentage"`
	ClearTaxPercentage bool             `json:"clear_tax_percentage,omitempty"`
	HSNCode            *string          `json:"hsn_code"`
	BatchID            *string          `json:"batch_id"`
}

// ProductResponse salida de un producto. tax_percentage null = usa la tasa del sistema.
type ProductResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.Decimal     `json:"price"`
	Barcode       string              `json:"barcode"`
	Stock         int                 `json:"stock"`
	TaxPercentage decimal.NullDecimal `json:"tax_percentage"`
	HSNCode       string              `json:"hsn_code"`
	BatchID       string              `json:"batch_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SyncMirrorResponse resultado de POST /api/products/sync-mirror.
type SyncMirrorResponse struct {
	Products int `json:"products"`
}
