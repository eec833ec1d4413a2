package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-billing-api/internal/application/auth"
	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/pkg/jwt"
)

type userRepo struct {
	byEmail map[string]*entity.User
}

func (r *userRepo) Create(context.Context, *entity.User) error { return nil }
func (r *userRepo) GetByID(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *userRepo) Update(context.Context, *entity.User) error { return nil }
func (r *userRepo) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (r *userRepo) Exists(context.Context, string) (bool, error) { return false, nil }
func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

const secret = "test-secret"

func newAuth(t *testing.T, status string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto1"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &userRepo{byEmail: map[string]*entity.User{
		"caja@tienda.com": {ID: "u1", Email: "caja@tienda.com", PasswordHash: string(hash), Role: entity.RoleBillingUser, Status: status},
	}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_GeneraToken(t *testing.T) {
	uc := newAuth(t, entity.UserStatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "Caja@Tienda.com", Password: "secreto1"})

	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleBillingUser, role)
	assert.Equal(t, "u1", out.User.ID)
}

func TestLogin_Rechaza(t *testing.T) {
	uc := newAuth(t, entity.UserStatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "caja@tienda.com", Password: "malo"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "otro@tienda.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc := newAuth(t, entity.UserStatusInactive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "caja@tienda.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
