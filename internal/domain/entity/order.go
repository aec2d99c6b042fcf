package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Métodos de envío conocidos. Cualquier otro valor se trata como estándar.
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
)

// orderTransitions transiciones permitidas: pending→processing→shipped→delivered;
// cancelled solo desde pending o processing.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransitionOrder indica si una orden puede pasar de from a to.
func CanTransitionOrder(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus indica si s es un estado de orden conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress copia de la dirección de envío guardada con la orden (JSONB).
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Order cabecera de una orden. Subtotal, Shipping, Tax y Total se calculan una
// sola vez al crearla y nunca se recalculan.
type Order struct {
	ID              string
	OrderNumber     string // ORD-<epochmillis>-<0..999>, único
	UserID          string
	UserEmail       string // solo lectura, se llena en listados de admin
	Status          string
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	ShippingMethod  string
	ShippingAddress ShippingAddress
	Notes           string
	Items           []*OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem copia puntual de la línea del carrito; desacoplada del Product vivo.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string // texto: no es FK al catálogo
	ProductName string
	Position    int // orden de la línea en el carrito, desde 1
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}
