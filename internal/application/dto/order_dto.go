package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peptide-store/internal/domain/entity"
)

// CartLineRequest línea del carrito enviada en el checkout (precio al momento de agregar).
type CartLineRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// PlaceOrderRequest entrada del checkout.
type PlaceOrderRequest struct {
	Items           []CartLineRequest      `json:"items"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	ShippingMethod  string                 `json:"shippingMethod"`
	Notes           string                 `json:"notes"`
}

// PlaceOrderResponse confirmación de la orden.
type PlaceOrderResponse struct {
	OrderID           string          `json:"orderId"`
	OrderNumber       string          `json:"orderNumber"`
	Status            string          `json:"status"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Shipping          decimal.Decimal `json:"shipping"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

// OrderItemResponse línea histórica de una orden.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderResponse orden con sus líneas.
type OrderResponse struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"orderNumber"`
	UserID          string                 `json:"userId"`
	UserEmail       string                 `json:"userEmail,omitempty"`
	Status          string                 `json:"status"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	Shipping        decimal.Decimal        `json:"shipping"`
	Tax             decimal.Decimal        `json:"tax"`
	Total           decimal.Decimal        `json:"total"`
	ShippingMethod  string                 `json:"shippingMethod"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	Notes           string                 `json:"notes,omitempty"`
	Items           []OrderItemResponse    `json:"items"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// OrderListResponse lista de órdenes (paginada en admin).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  *PageResponse   `json:"page,omitempty"`
}

// UpdateOrderStatusRequest cambio de estado hecho por un admin.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
