package repository

import (
	"context"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// BillStore almacén principal de facturas (lista de documentos).
// Su escritura es el único paso obligatorio al registrar una venta.
type BillStore interface {
	// Append agrega la factura. Devuelve domain.ErrDuplicate si el ID ya existe y el almacén
	// rechaza duplicados.
	Append(ctx context.Context, bill *entity.Bill) error
	ListAll(ctx context.Context) ([]*entity.Bill, error)
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
}

// BillRepository persistencia relacional de facturas (cabecera + líneas).
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	CreateItems(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
}
