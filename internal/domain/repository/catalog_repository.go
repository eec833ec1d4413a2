package repository

import (
	"context"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// HSNCodeRepository define el puerto de persistencia del catálogo HSN.
type HSNCodeRepository interface {
	Create(ctx context.Context, code *entity.HSNCode) error
	GetByID(ctx context.Context, id string) (*entity.HSNCode, error)
	Update(ctx context.Context, code *entity.HSNCode) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.HSNCode, error)
}

// BatchRepository define el puerto de persistencia de lotes.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Batch, error)
}
