package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

const minPasswordLength = 6

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create registra un usuario: hashea el password con bcrypt. Rol por defecto billing_user.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleBillingUser
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("rol %q: %w", role, domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Update cambia nombre, rol o estado.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("rol %q: %w", *in.Role, domain.ErrInvalidInput)
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.UserStatusActive, entity.UserStatusInactive:
			user.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.UserFromEntity(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
