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

// HSNCodeUseCase CRUD del catálogo de códigos HSN.
type HSNCodeUseCase struct {
	repo repository.HSNCodeRepository
}

// NewHSNCodeUseCase construye el caso de uso.
func NewHSNCodeUseCase(repo repository.HSNCodeRepository) *HSNCodeUseCase {
	return &HSNCodeUseCase{repo: repo}
}

// Create crea un código; el código no puede estar vacío ni la tasa ser negativa.
func (uc *HSNCodeUseCase) Create(ctx context.Context, in dto.CreateHSNCodeRequest) (*dto.HSNCodeResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.Tax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	h := &entity.HSNCode{
		ID:        uuid.New().String(),
		Code:      code,
		Tax:       in.Tax,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	out := dto.HSNCodeFromEntity(h)
	return &out, nil
}

// GetByID obtiene un código.
func (uc *HSNCodeUseCase) GetByID(ctx context.Context, id string) (*dto.HSNCodeResponse, error) {
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.HSNCodeFromEntity(h)
	return &out, nil
}

// Update actualiza los campos enviados.
func (uc *HSNCodeUseCase) Update(ctx context.Context, id string, in dto.UpdateHSNCodeRequest) (*dto.HSNCodeResponse, error) {
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		h.Code = code
	}
	if in.Tax != nil {
		if in.Tax.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		h.Tax = *in.Tax
	}
	h.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	out := dto.HSNCodeFromEntity(h)
	return &out, nil
}

// Delete elimina un código.
func (uc *HSNCodeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista códigos.
func (uc *HSNCodeUseCase) List(ctx context.Context, limit, offset int) (*dto.HSNCodeListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HSNCodeResponse, 0, len(list))
	for _, h := range list {
		items = append(items, dto.HSNCodeFromEntity(h))
	}
	return &dto.HSNCodeListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
