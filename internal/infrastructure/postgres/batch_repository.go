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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batches (id, batch_number, place, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`, b.ID, b.BatchNumber, b.Place, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	var b entity.Batch
	err := r.q.QueryRow(ctx, `
		SELECT id, batch_number, place, created_at, updated_at
		FROM batches WHERE id = $1`, id,
	).Scan(&b.ID, &b.BatchNumber, &b.Place, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Update actualiza número y lugar.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE batches SET batch_number = $2, place = $3, updated_at = $4
		WHERE id = $1`, b.ID, b.BatchNumber, b.Place, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista lotes por número.
func (r *BatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, batch_number, place, created_at, updated_at
		FROM batches ORDER BY batch_number LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.BatchNumber, &b.Place, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
