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

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo implementación del puerto DiscountRepository sobre PostgreSQL.
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador de persistencia para solicitudes de descuento.
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

const discountColumns = `discount_id, user_id, discount, discount_amount, bill_id, status, approved_by, created_at, updated_at`

func scanDiscount(row pgx.Row) (*entity.DiscountRequest, error) {
	var d entity.DiscountRequest
	err := row.Scan(&d.ID, &d.UserID, &d.Percentage, &d.Amount, &d.BillID, &d.Status, &d.ApprovedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste una solicitud.
func (r *DiscountRepo) Create(ctx context.Context, d *entity.DiscountRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO discounts (`+discountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.UserID, d.Percentage, d.Amount, d.BillID, d.Status, d.ApprovedBy, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert discount: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *DiscountRepo) GetByID(ctx context.Context, id string) (*entity.DiscountRequest, error) {
	d, err := scanDiscount(r.q.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE discount_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return d, nil
}

// UpdateStatus cambia estado y aprobador.
func (r *DiscountRepo) UpdateStatus(ctx context.Context, d *entity.DiscountRequest) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE discounts SET status = $2, approved_by = $3, updated_at = $4
		WHERE discount_id = $1`, d.ID, d.Status, d.ApprovedBy, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update discount status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMany borra en una sola sentencia.
func (r *DiscountRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM discounts WHERE discount_id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete discounts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List de la más reciente a la más antigua.
func (r *DiscountRepo) List(ctx context.Context, limit, offset int) ([]*entity.DiscountRequest, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+discountColumns+` FROM discounts
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.DiscountRequest
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
