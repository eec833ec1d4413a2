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

// Estados de tienda.
const (
	StoreStatusActive   = "active"
	StoreStatusInactive = "inactive"
)

// StoreUseCase casos de uso para tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda activa.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Status:    StoreStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	out := dto.StoreFromEntity(store)
	return &out, nil
}

// GetByID obtiene una tienda.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.StoreFromEntity(store)
	return &out, nil
}

// Update actualiza los campos enviados.
func (uc *StoreUseCase) Update(ctx context.Context, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		store.Name = name
	}
	if in.Address != nil {
		store.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		store.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Status != nil {
		switch *in.Status {
		case StoreStatusActive, StoreStatusInactive:
			store.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	store.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	out := dto.StoreFromEntity(store)
	return &out, nil
}

// List lista tiendas.
func (uc *StoreUseCase) List(ctx context.Context, limit, offset int) (*dto.StoreListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StoreFromEntity(s))
	}
	return &dto.StoreListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
