package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// BatchUseCase CRUD de lotes.
type BatchUseCase struct {
	repo repository.BatchRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(repo repository.BatchRepository) *BatchUseCase {
	return &BatchUseCase{repo: repo}
}

// Create crea un lote con número obligatorio.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	number := strings.TrimSpace(in.BatchNumber)
	if number == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	b := &entity.Batch{
		ID:          uuid.New().String(),
		BatchNumber: number,
		Place:       strings.TrimSpace(in.Place),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	out := dto.BatchFromEntity(b)
	return &out, nil
}

// GetByID obtiene un lote.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.BatchFromEntity(b)
	return &out, nil
}

// Update actualiza los campos enviados.
func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.BatchNumber != nil {
		number := strings.TrimSpace(*in.BatchNumber)
		if number == "" {
			return nil, domain.ErrInvalidInput
		}
		b.BatchNumber = number
	}
	if in.Place != nil {
		b.Place = strings.TrimSpace(*in.Place)
	}
	b.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	out := dto.BatchFromEntity(b)
	return &out, nil
}

// Delete elimina un lote. Los productos conservan el BatchID.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista lotes.
func (uc *BatchUseCase) List(ctx context.Context, limit, offset int) (*dto.BatchListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.BatchFromEntity(b))
	}
	return &dto.BatchListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
