package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/peptide-store/pkg/cartstore"
)

// AddToCartRequest agrega (o acumula) un producto al carrito de servidor.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest fija la cantidad de una línea; <= 0 la elimina.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// SyncCartRequest carrito mantenido por el cliente.
type SyncCartRequest struct {
	Items []cartstore.Line `json:"items"`
}

// CartResponse carrito combinado con total derivado (informativo).
type CartResponse struct {
	Items     []cartstore.Line `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	ItemCount int              `json:"itemCount"`
	Persisted bool             `json:"persisted"` // false para visitantes anónimos
}
