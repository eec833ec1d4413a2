package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
