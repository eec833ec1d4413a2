package repository

import (
	"context"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// DiscountRepository define el puerto de persistencia de solicitudes de descuento.
type DiscountRepository interface {
	Create(ctx context.Context, d *entity.DiscountRequest) error
	GetByID(ctx context.Context, id string) (*entity.DiscountRequest, error)
	// UpdateStatus cambia estado, aprobador y updated_at. ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, d *entity.DiscountRequest) error
	// DeleteMany borra las solicitudes indicadas y devuelve cuántas existían.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// List ordena de la más reciente a la más antigua.
	List(ctx context.Context, limit, offset int) ([]*entity.DiscountRequest, error)
}
