package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un cliente o administrador de la tienda.
// Los usuarios nunca se eliminan físicamente; se desactivan vía Status.
type User struct {
	ID           string
	Email        string // único, normalizado en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Organization string
	IsAdmin      bool
	Status       string // active, inactive, suspended
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// ValidUserStatus indica si s es un estado de usuario conocido.
func ValidUserStatus(s string) bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}
