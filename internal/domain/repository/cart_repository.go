package repository

import (
	"context"

	"github.com/jhoicas/peptide-store/internal/domain/entity"
)

// CartRepository define el puerto del carrito de servidor.
type CartRepository interface {
	// AddQuantity inserta la fila o suma delta a la existente en una sola sentencia
	// (INSERT ... ON CONFLICT DO UPDATE), sin lecturas previas.
	AddQuantity(ctx context.Context, userID, productID string, delta int) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error)
	Remove(ctx context.Context, userID, productID string) (bool, error)
	Clear(ctx context.Context, userID string) error
	// Lines devuelve el carrito unido con nombre y precio vigentes del producto.
	Lines(ctx context.Context, userID string) ([]entity.CartLine, error)
}
