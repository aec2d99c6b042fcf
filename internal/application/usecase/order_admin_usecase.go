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

// OrderAdminUseCase gestión de órdenes de todos los usuarios.
type OrderAdminUseCase struct {
	repo repository.OrderRepository
	log  *logger.Logger
}

// NewOrderAdminUseCase construye el caso de uso.
func NewOrderAdminUseCase(repo repository.OrderRepository, log *logger.Logger) *OrderAdminUseCase {
	return &OrderAdminUseCase{repo: repo, log: log.Named("orders_admin")}
}

// List todas las órdenes, más recientes primero, con el email del comprador.
func (uc *OrderAdminUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
	}
	limit, offset = normalizePage(limit, offset)
	list, total, err := uc.repo.List(ctx, repository.OrderFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *dto.NewOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  &dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Get orden con sus líneas.
func (uc *OrderAdminUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.ItemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("líneas de la orden: %w", err)
	}
	o.Items = items
	return dto.NewOrderResponse(o), nil
}

// UpdateStatus avanza la orden según las transiciones permitidas.
func (uc *OrderAdminUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransitionOrder(o.Status, status) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, o.Status, status)
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	uc.log.Info().Str("order_id", id).Str("from", o.Status).Str("to", status).Msg("estado de orden actualizado")
	return uc.Get(ctx, id)
}
