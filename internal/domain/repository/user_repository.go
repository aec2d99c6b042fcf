package repository

import (
	"context"
	"time"

	"github.com/jhoicas/peptide-store/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
	// UpdateAccess cambia status e is_admin (acciones de admin).
	UpdateAccess(ctx context.Context, id, status string, isAdmin bool) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
