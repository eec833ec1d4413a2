package repository

import (
	"context"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia relacional para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock resta quantity al stock en una sola sentencia (stock = stock - $2).
	// No valida suficiencia: el stock puede quedar negativo.
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// ProductMirror copia desnormalizada del catálogo (documento JSON o colección Mongo).
// Es best-effort: sus fallas no invalidan una venta.
type ProductMirror interface {
	ReadAll(ctx context.Context) ([]*entity.Product, error)
	WriteAll(ctx context.Context, products []*entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Upsert(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementStock aplica todas las restas por producto de forma atómica por clave,
	// sin reescribir el catálogo con una lectura vieja.
	DecrementStock(ctx context.Context, quantities map[string]int) error
}
