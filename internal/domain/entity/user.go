package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleBillingUser = "billing_user"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidRole indica si el rol es uno de los soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleBillingUser:
		return true
	}
	return false
}

// User representa un usuario del back-office o de caja.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
