package checkout

import (
	"context"
	"fmt"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// OrderQueryUseCase lecturas de órdenes del propio usuario y su comprobante.
type OrderQueryUseCase struct {
	orderRepo repository.OrderRepository
	receipts  ReceiptGenerator
}

// NewOrderQueryUseCase construye el caso de uso. receipts puede ser nil si no se expone el PDF.
func NewOrderQueryUseCase(orderRepo repository.OrderRepository, receipts ReceiptGenerator) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo, receipts: receipts}
}

// ListForUser órdenes del usuario, más recientes primero, con sus líneas.
func (uc *OrderQueryUseCase) ListForUser(ctx context.Context, userID string) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	out := &dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		// una consulta de líneas por orden
		items, err := uc.orderRepo.ItemsByOrder(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("líneas de la orden %s: %w", o.ID, err)
		}
		o.Items = items
		out.Items = append(out.Items, *dto.NewOrderResponse(o))
	}
	return out, nil
}

// GetForUser devuelve la orden con sus líneas. ErrNotFound si no existe o es de otro usuario.
func (uc *OrderQueryUseCase) GetForUser(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.loadOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

// Receipt genera el PDF de la orden del usuario. Retorna los bytes y el nombre de archivo.
func (uc *OrderQueryUseCase) Receipt(ctx context.Context, userID, orderID string) ([]byte, string, error) {
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("generador de comprobantes no configurado")
	}
	o, err := uc.loadOwned(ctx, userID, orderID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.GenerateOrderReceipt(o)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, o.OrderNumber + ".pdf", nil
}

func (uc *OrderQueryUseCase) loadOwned(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	if o == nil || o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ItemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("líneas de la orden: %w", err)
	}
	o.Items = items
	return o, nil
}
