package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/pricing"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

const (
	// MaxOrderNumberAttempts intentos antes de rendirse ante colisiones de order_number.
	MaxOrderNumberAttempts = 3
	// DeliveryEstimate plazo informado al cliente desde la creación de la orden.
	DeliveryEstimate = 7 * 24 * time.Hour
	// MaxProductNameLength coincide con order_items.product_name VARCHAR(255).
	MaxProductNameLength = 255
)

// NewOrderNumber genera ORD-<epochmillis>-<0..999>.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), rand.IntN(1000))
}

// PlaceOrderUseCase crea la orden y sus líneas en una sola transacción.
type PlaceOrderUseCase struct {
	txRunner       OrderTxRunner
	payments       PaymentCapturer
	recorder       Recorder
	log            *logger.Logger
	now            func() time.Time
	newOrderNumber func(time.Time) string
}

// NewPlaceOrderUseCase construye el caso de uso. payments y recorder pueden ser nil.
func NewPlaceOrderUseCase(txRunner OrderTxRunner, payments PaymentCapturer, recorder Recorder, log *logger.Logger) *PlaceOrderUseCase {
	if payments == nil {
		payments = NoopPaymentCapturer{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &PlaceOrderUseCase{
		txRunner:       txRunner,
		payments:       payments,
		recorder:       recorder,
		log:            log.Named("checkout"),
		now:            time.Now,
		newOrderNumber: NewOrderNumber,
	}
}

// WithClock reemplaza reloj y generador de número (tests).
func (uc *PlaceOrderUseCase) WithClock(now func() time.Time, orderNumber func(time.Time) string) *PlaceOrderUseCase {
	if now != nil {
		uc.now = now
	}
	if orderNumber != nil {
		uc.newOrderNumber = orderNumber
	}
	return uc
}

// Validate revisa la entrada sin tocar datos, en el orden: carrito vacío, nombre de
// envío, líneas.
func Validate(in dto.PlaceOrderRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	if strings.TrimSpace(in.ShippingAddress.FullName) == "" {
		return domain.ErrMissingFullName
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return fmt.Errorf("%w: items[%d].productId es requerido", domain.ErrInvalidInput, i)
		}
		if utf8.RuneCountInString(it.Name) > MaxProductNameLength {
			return fmt.Errorf("%w: items[%d].name excede %d caracteres", domain.ErrInvalidInput, i, MaxProductNameLength)
		}
		if it.Quantity < 1 || it.Quantity > math.MaxInt32 {
			return fmt.Errorf("%w: items[%d].quantity fuera de rango", domain.ErrInvalidInput, i)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: items[%d].price no puede ser negativo", domain.ErrInvalidInput, i)
		}
		if !pricing.IsCents(it.Price) {
			return fmt.Errorf("%w: items[%d].price admite hasta 2 decimales", domain.ErrInvalidInput, i)
		}
		if pricing.LineTotal(it.Price, it.Quantity).GreaterThanOrEqual(pricing.MaxAmount) {
			return fmt.Errorf("%w: items[%d] excede el importe máximo", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// PlaceOrder valida, cotiza, captura el pago y persiste orden + líneas de forma atómica.
// Una colisión de número de orden se reintenta con un número nuevo; tras
// MaxOrderNumberAttempts devuelve domain.ErrConflict.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, userID string, in dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := Validate(in); err != nil {
		uc.recorder.OrderFailed("validation")
		return nil, err
	}

	lines := make([]pricing.Line, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	quote := pricing.Calculate(lines, in.ShippingMethod)
	if quote.Total.GreaterThanOrEqual(pricing.MaxAmount) {
		uc.recorder.OrderFailed("validation")
		return nil, fmt.Errorf("%w: el total excede el importe máximo", domain.ErrInvalidInput)
	}
	method := entity.ShippingMethodStandard
	if in.ShippingMethod == entity.ShippingMethodExpress {
		method = entity.ShippingMethodExpress
	}

	// El ID es la referencia del cobro; se conserva entre reintentos de número.
	orderID := uuid.New().String()
	if err := uc.payments.Capture(ctx, userID, orderID, quote.Total); err != nil {
		uc.recorder.OrderFailed("payment")
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("pago rechazado")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
	}

	var order *entity.Order
	for attempt := 1; ; attempt++ {
		now := uc.now().UTC()
		order = &entity.Order{
			ID:              orderID,
			OrderNumber:     uc.newOrderNumber(now),
			UserID:          userID,
			Status:          entity.OrderStatusPending,
			Subtotal:        quote.Subtotal,
			Shipping:        quote.Shipping,
			Tax:             quote.Tax,
			Total:           quote.Total,
			ShippingMethod:  method,
			ShippingAddress: in.ShippingAddress,
			Notes:           strings.TrimSpace(in.Notes),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for i, it := range in.Items {
			order.Items = append(order.Items, &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   it.ProductID,
				ProductName: it.Name,
				Position:    i + 1,
				Quantity:    it.Quantity,
				UnitPrice:   it.Price,
				LineTotal:   pricing.LineTotal(it.Price, it.Quantity),
				CreatedAt:   now,
			})
		}

		err := uc.persist(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrOrderNumberTaken) && attempt < MaxOrderNumberAttempts {
			uc.log.Warn().Str("order_number", order.OrderNumber).Int("attempt", attempt).Msg("número de orden repetido, reintentando")
			continue
		}
		if errors.Is(err, domain.ErrOrderNumberTaken) {
			uc.recorder.OrderFailed("order_number")
			return nil, fmt.Errorf("%w: no se pudo asignar un número de orden único", domain.ErrConflict)
		}
		uc.recorder.OrderFailed("persistence")
		return nil, fmt.Errorf("crear orden: %w", err)
	}

	uc.recorder.OrderPlaced()
	uc.log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("user_id", userID).
		Str("total", order.Total.StringFixed(2)).
		Msg("orden creada")

	return &dto.PlaceOrderResponse{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		Subtotal:          order.Subtotal,
		Shipping:          order.Shipping,
		Tax:               order.Tax,
		Total:             order.Total,
		EstimatedDelivery: order.CreatedAt.Add(DeliveryEstimate),
	}, nil
}

func (uc *PlaceOrderUseCase) persist(ctx context.Context, order *entity.Order) error {
	return uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := orderRepo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("guardar línea %s: %w", item.ProductID, err)
			}
		}
		return nil
	})
}
