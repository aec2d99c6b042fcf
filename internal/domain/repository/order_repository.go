package repository

import (
	"context"

	"github.com/jhoicas/peptide-store/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes de admin.
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para Order y OrderItem.
// Create y CreateItem se usan dentro de la transacción de colocación de la orden.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, int, error)
	ItemsByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
