package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El teléfono identifica al cliente en caja.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	out := dto.CustomerFromEntity(customer)
	return &out, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.CustomerFromEntity(c)
	return &out, nil
}

// List lista clientes.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) (*dto.CustomerListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CustomerFromEntity(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
