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

var _ repository.HSNCodeRepository = (*HSNCodeRepo)(nil)

// HSNCodeRepo implementación del puerto HSNCodeRepository sobre PostgreSQL.
type HSNCodeRepo struct {
	q Querier
}

// NewHSNCodeRepository construye el adaptador de persistencia del catálogo HSN.
func NewHSNCodeRepository(q Querier) *HSNCodeRepo {
	return &HSNCodeRepo{q: q}
}

// Create persiste un código. El código es único.
func (r *HSNCodeRepo) Create(ctx context.Context, h *entity.HSNCode) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO hsn_codes (id, hsn_code, tax, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`, h.ID, h.Code, h.Tax, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert hsn code: %w", err)
	}
	return nil
}

// GetByID obtiene un código por ID.
func (r *HSNCodeRepo) GetByID(ctx context.Context, id string) (*entity.HSNCode, error) {
	var h entity.HSNCode
	err := r.q.QueryRow(ctx, `
		SELECT id, hsn_code, tax, created_at, updated_at
		FROM hsn_codes WHERE id = $1`, id,
	).Scan(&h.ID, &h.Code, &h.Tax, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hsn code: %w", err)
	}
	return &h, nil
}

// Update actualiza código y tasa.
func (r *HSNCodeRepo) Update(ctx context.Context, h *entity.HSNCode) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE hsn_codes SET hsn_code = $2, tax = $3, updated_at = $4
		WHERE id = $1`, h.ID, h.Code, h.Tax, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update hsn code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un código. Los productos que lo usan conservan el texto.
func (r *HSNCodeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM hsn_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hsn code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista códigos ordenados por código.
func (r *HSNCodeRepo) List(ctx context.Context, limit, offset int) ([]*entity.HSNCode, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, hsn_code, tax, created_at, updated_at
		FROM hsn_codes ORDER BY hsn_code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list hsn codes: %w", err)
	}
	defer rows.Close()

	var list []*entity.HSNCode
	for rows.Next() {
		var h entity.HSNCode
		if err := rows.Scan(&h.ID, &h.Code, &h.Tax, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan hsn code: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
