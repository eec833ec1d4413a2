package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillItemDTO línea de factura en el formato del almacén de documentos (camelCase).
type BillItemDTO struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"total"`
	TaxPercentage decimal.Decimal `json:"gstRate"`
	HSNCode       string          `json:"hsnCode,omitempty"`
	Barcodes      string          `json:"barcodes,omitempty"`
}

// CustomerSnapshotDTO datos del cliente copiados en la factura.
type CustomerSnapshotDTO struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// BillDTO factura finalizada. Es la forma canónica que se guarda en bills.json
// y la que devuelve la API.
type BillDTO struct {
	ID                 string              `json:"id"`
	StoreID            string              `json:"storeId,omitempty"`
	StoreName          string              `json:"storeName,omitempty"`
	StoreAddress       string              `json:"storeAddress,omitempty"`
	Customer           CustomerSnapshotDTO `json:"customer"`
	Items              []BillItemDTO       `json:"items"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	DiscountPercentage decimal.Decimal     `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal     `json:"discountAmount"`
	TaxPercentage      decimal.Decimal     `json:"taxPercentage"`
	TaxAmount          decimal.Decimal     `json:"taxAmount"`
	Total              decimal.Decimal     `json:"total"`
	PaymentMethod      string              `json:"paymentMethod"`
	Timestamp          time.Time           `json:"timestamp"`
	Notes              string              `json:"notes,omitempty"`
	CreatedBy          string              `json:"createdBy"`
	GSTIN              string              `json:"gstin,omitempty"`
	CompanyName        string              `json:"companyName,omitempty"`
	CompanyAddress     string              `json:"companyAddress,omitempty"`
	CompanyPhone       string              `json:"companyPhone,omitempty"`
	CompanyEmail       string              `json:"companyEmail,omitempty"`
	BillFormat         string              `json:"billFormat"`
}

// BranchStatusDTO resultado de un paso de persistencia.
type BranchStatusDTO struct {
	Status string `json:"status"` // ok | failed | skipped
	Error  string `json:"error,omitempty"`
}

// PersistOutcomeDTO estado de cada rama tras guardar una factura.
type PersistOutcomeDTO struct {
	Primary    BranchStatusDTO `json:"primary"`
	Log        BranchStatusDTO `json:"log"`
	Mirror     BranchStatusDTO `json:"mirror"`
	Relational BranchStatusDTO `json:"relational"`
}

// BillCreatedResponse respuesta 201 de POST /api/bills y POST /api/checkout.
type BillCreatedResponse struct {
	Bill    BillDTO           `json:"bill"`
	Outcome PersistOutcomeDTO `json:"outcome"`
}

// BillListResponse historial de facturas (más recientes primero).
type BillListResponse struct {
	Items []BillDTO    `json:"items"`
	Page  PageResponse `json:"page"`
}
