package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// UserUseCase administración de usuarios: listado y cambios de acceso.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log.Named("users")}
}

// List lista usuarios paginados (más recientes primero).
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// UpdateAccess cambia status y/o isAdmin. Un admin no puede quitarse el rol ni
// desactivarse a sí mismo.
func (uc *UserUseCase) UpdateAccess(ctx context.Context, actorID, targetID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Status == nil && in.IsAdmin == nil {
		return nil, fmt.Errorf("%w: status o isAdmin es requerido", domain.ErrInvalidInput)
	}
	if in.Status != nil && !entity.ValidUserStatus(*in.Status) {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, *in.Status)
	}
	user, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	status, isAdmin := user.Status, user.IsAdmin
	if in.Status != nil {
		status = *in.Status
	}
	if in.IsAdmin != nil {
		isAdmin = *in.IsAdmin
	}
	if actorID == targetID && (!isAdmin || status != entity.UserStatusActive) {
		return nil, fmt.Errorf("%w: no puede quitarse el rol de admin ni desactivar su propia cuenta", domain.ErrInvalidInput)
	}

	if err := uc.repo.UpdateAccess(ctx, targetID, status, isAdmin); err != nil {
		return nil, fmt.Errorf("actualizar acceso: %w", err)
	}
	uc.log.Info().
		Str("actor_id", actorID).
		Str("user_id", targetID).
		Str("status", status).
		Bool("is_admin", isAdmin).
		Msg("acceso de usuario actualizado")

	user.Status, user.IsAdmin = status, isAdmin
	return dto.NewUserResponse(user), nil
}
