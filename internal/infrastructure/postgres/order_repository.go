package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderNumberConstraint = "orders_order_number_key"

const orderColumns = `o.id, o.order_number, o.user_id, COALESCE(u.email, ''), o.status, o.subtotal, o.shipping,
	o.tax, o.total, o.shipping_method, o.shipping_address, COALESCE(o.notes, ''), o.created_at, o.updated_at`

// OrderRepo órdenes y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera. Un order_number repetido devuelve ErrOrderNumberTaken.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, status, subtotal, shipping, tax, total,
			shipping_method, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.UserID, o.Status, o.Subtotal, o.Shipping, o.Tax, o.Total,
		o.ShippingMethod, o.ShippingAddress, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == orderNumberConstraint {
			return domain.ErrOrderNumberTaken
		}
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, position, quantity, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.OrderID, it.ProductID, it.ProductName, it.Position, it.Quantity, it.UnitPrice, it.LineTotal, it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera (sin líneas); (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + orderColumns + ` FROM orders o LEFT JOIN users u ON u.id = o.user_id WHERE o.id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByUser órdenes del usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o LEFT JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id`
	return r.queryOrders(ctx, query, userID)
}

// List todas las órdenes con el email del comprador, filtrables por estado.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE ($1::text = '' OR status = $1::text)`, f.Status).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	query := `SELECT ` + orderColumns + `
		FROM orders o LEFT JOIN users u ON u.id = o.user_id
		WHERE ($1::text = '' OR o.status = $1::text)
		ORDER BY o.created_at DESC, o.id
		LIMIT $2 OFFSET $3`
	list, err := r.queryOrders(ctx, query, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ItemsByOrder líneas de una orden en el orden del carrito (position).
func (r *OrderRepo) ItemsByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, position, quantity, unit_price, line_total, created_at
		FROM order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	items := make([]*entity.OrderItem, 0)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Position, &it.Quantity,
			&it.UnitPrice, &it.LineTotal, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.UserEmail, &o.Status, &o.Subtotal, &o.Shipping,
		&o.Tax, &o.Total, &o.ShippingMethod, &o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
