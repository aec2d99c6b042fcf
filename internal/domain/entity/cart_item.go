package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem fila del carrito de servidor (solo usuarios autenticados).
// El par (UserID, ProductID) es único; agregar el mismo producto acumula Quantity.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine vista de un CartItem unida con los datos vivos del producto.
type CartLine struct {
	ProductID string
	SKU       string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}
