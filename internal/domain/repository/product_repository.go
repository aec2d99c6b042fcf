package repository

import (
	"context"

	"github.com/jhoicas/peptide-store/internal/domain/entity"
)

// ProductFilter filtros para listados de productos.
type ProductFilter struct {
	Status   string // vacío = todos
	Category string
	Search   string // coincide con nombre o SKU (ILIKE)
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
