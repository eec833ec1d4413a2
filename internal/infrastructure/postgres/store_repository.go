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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, address, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Address, s.Phone, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM stores WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// Update actualiza nombre, dirección, teléfono y estado.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stores SET name = $2, address = $3, phone = $4, status = $5, updated_at = $6
		WHERE id = $1`, s.ID, s.Name, s.Address, s.Phone, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tiendas por nombre.
func (r *StoreRepo) List(ctx context.Context, limit, offset int) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM stores ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
