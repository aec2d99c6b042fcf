package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de publicación de un producto.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un péptido del catálogo.
// La tienda solo muestra productos con Status = active; el SKU hace de slug público.
type Product struct {
	ID          string
	SKU         string // único, slug en la URL pública
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int // nunca negativo (CHECK en DB)
	Category    string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidProductStatus indica si s es un estado de producto conocido.
func ValidProductStatus(s string) bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}
