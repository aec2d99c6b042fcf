package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carrito de servidor sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// AddQuantity inserta o incrementa en una sola sentencia; dos peticiones concurrentes
// sobre el mismo (user, product) suman ambas cantidades.
func (r *CartRepo) AddQuantity(ctx context.Context, userID, productID string, delta int) error {
	if !validID(productID) {
		return domain.ErrNotFound
	}
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), userID, productID, delta)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// SetQuantity fija la cantidad; false si la línea no existe.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	if !validID(productID) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("update cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove borra la línea; false si no existía.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) (bool, error) {
	if !validID(productID) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Clear vacía el carrito del usuario.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Lines devuelve el carrito con nombre y precio vigentes, en orden de inserción.
func (r *CartRepo) Lines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	query := `
		SELECT c.product_id, p.sku, p.name, p.price, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at, c.id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()
	var lines []entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ProductID, &l.SKU, &l.Name, &l.Price, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
