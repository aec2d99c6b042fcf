// Package pricing calcula los totales de una orden a partir del carrito y el método de envío.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Tarifas planas vigentes.
var (
	StandardShipping = decimal.RequireFromString("5.00")
	ExpressShipping  = decimal.RequireFromString("15.00")
	TaxRate          = decimal.RequireFromString("0.08")
	// MaxAmount cota exclusiva de cualquier importe: numeric(12,2) admite hasta 9999999999.99.
	MaxAmount = decimal.New(1, 10)
)

// Line línea mínima necesaria para cotizar.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Quote totales de una orden, todos redondeados a 2 decimales.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal precio × cantidad de una línea.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// IsCents indica si el importe no tiene más de 2 decimales.
func IsCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// ShippingFor devuelve la tarifa del método; cualquier valor distinto de "express" es estándar.
func ShippingFor(method string) decimal.Decimal {
	if method == "express" {
		return ExpressShipping
	}
	return StandardShipping
}

// Calculate es determinista: mismo carrito y método producen siempre la misma cotización.
//
//	subtotal = Σ price × qty
//	shipping = 15.00 (express) | 5.00
//	tax      = round(subtotal × 0.08, 2)
//	total    = subtotal + shipping + tax
func Calculate(lines []Line, method string) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Price, l.Quantity))
	}
	subtotal = subtotal.Round(2)
	shipping := ShippingFor(method)
	tax := subtotal.Mul(TaxRate).Round(2)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
