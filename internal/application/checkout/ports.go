package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// OrderTxRunner ejecuta fn dentro de una transacción con un OrderRepository atado a ella.
// Si fn devuelve error se hace rollback y nada queda visible.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// PaymentCapturer captura el pago una sola vez, antes de persistir la orden.
// reference es el ID de la orden; sirve de clave de idempotencia ante el procesador.
// Un error se traduce a domain.ErrPaymentDeclined.
type PaymentCapturer interface {
	Capture(ctx context.Context, userID, reference string, amount decimal.Decimal) error
}

// NoopPaymentCapturer acepta cualquier monto; no hay procesador de pagos real.
type NoopPaymentCapturer struct{}

// Capture no hace nada.
func (NoopPaymentCapturer) Capture(context.Context, string, string, decimal.Decimal) error {
	return nil
}

// ReceiptGenerator genera el comprobante PDF de una orden.
type ReceiptGenerator interface {
	GenerateOrderReceipt(order *entity.Order) ([]byte, error)
}

// Recorder recibe los eventos de colocación de órdenes (métricas).
type Recorder interface {
	OrderPlaced()
	OrderFailed(reason string)
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced()       {}
func (nopRecorder) OrderFailed(string) {}
