package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, price, barcode, stock, tax_percentage, hsn_code, batch_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Barcode, &p.Stock, &p.TaxPercentage, &p.HSNCode, &p.BatchID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.Barcode, p.Stock, p.TaxPercentage, p.HSNCode, p.BatchID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza todos los campos editables, incluido el stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, barcode = $4, stock = $5, tax_percentage = $6, hsn_code = $7, batch_id = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Price, p.Barcode, p.Stock, p.TaxPercentage, p.HSNCode, p.BatchID, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListAll devuelve el catálogo completo (sincronización del espejo).
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
}

// Delete elimina un producto. Las líneas de facturas previas lo conservan por copia.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock resta quantity en una sola sentencia. Sin fila afectada no es error:
// el producto puede no existir en la base relacional.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID string, quantity int) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1`, productID, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock %s: %w", productID, err)
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
