package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HSNCode entrada del catálogo de códigos HSN con su tasa de GST.
// Los productos guardan el código como texto; el catálogo es la referencia para elegirlo.
type HSNCode struct {
	ID        string
	Code      string
	Tax       decimal.Decimal // porcentaje, >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
