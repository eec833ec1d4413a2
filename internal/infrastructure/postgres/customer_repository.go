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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, phone, email, address, created_at, updated_at`

// Create persiste un cliente. El teléfono es único.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByPhone obtiene un cliente por teléfono.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone = $1`, phone)
}

// List lista clientes por nombre.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) findOne(ctx context.Context, query string, arg any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
