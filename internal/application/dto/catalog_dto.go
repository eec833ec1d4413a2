package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateHSNCodeRequest entrada para crear un código HSN.
type CreateHSNCodeRequest struct {
	Code string          `json:"hsnCode"`
	Tax  decimal.Decimal `json:"tax"`
}

// UpdateHSNCodeRequest entrada para actualizar un código HSN (campos nil no cambian).
type UpdateHSNCodeRequest struct {
	Code *string          `json:"hsnCode"`
	Tax  *decimal.Decimal `json:"tax"`
}

// HSNCodeResponse salida de un código HSN.
type HSNCodeResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"hsnCode"`
	Tax       decimal.Decimal `json:"tax"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// HSNCodeListResponse lista paginada de códigos HSN.
type HSNCodeListResponse struct {
	Items []HSNCodeResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateBatchRequest entrada para crear un lote.
type CreateBatchRequest struct {
	BatchNumber string `json:"batchNumber"`
	Place       string `json:"place"`
}

// UpdateBatchRequest entrada para actualizar un lote.
type UpdateBatchRequest struct {
	BatchNumber *string `json:"batchNumber"`
	Place       *string `json:"place"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID          string    `json:"id"`
	BatchNumber string    `json:"batchNumber"`
	Place       string    `json:"place"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BatchListResponse lista paginada de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
