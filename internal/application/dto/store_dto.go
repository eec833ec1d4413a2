package dto

import "time"

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateStoreRequest entrada para actualizar una tienda.
type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse lista paginada de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
