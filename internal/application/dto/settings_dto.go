package dto

import "github.com/shopspring/decimal"

// MarginsDTO márgenes de impresión.
type MarginsDTO struct {
	Top    decimal.Decimal `json:"top"`
	Bottom decimal.Decimal `json:"bottom"`
	Left   decimal.Decimal `json:"left"`
	Right  decimal.Decimal `json:"right"`
}

// BillFormatDTO dimensiones de papel. Height "auto" en formatos térmicos.
type BillFormatDTO struct {
	Width   decimal.Decimal `json:"width"`
	Height  string          `json:"height"`
	Margins MarginsDTO      `json:"margins"`
	Unit    string          `json:"unit"`
}

// SettingsDTO configuración del sistema (GET/PUT /api/settings).
type SettingsDTO struct {
	GSTIN          string                   `json:"gstin"`
	TaxPercentage  decimal.Decimal          `json:"taxPercentage"`
	CompanyName    string                   `json:"companyName"`
	CompanyAddress string                   `json:"companyAddress"`
	CompanyPhone   string                   `json:"companyPhone"`
	CompanyEmail   string                   `json:"companyEmail"`
	BillFormats    map[string]BillFormatDTO `json:"billFormats"`
}
