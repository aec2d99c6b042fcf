package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
	"github.com/jhoicas/peptide-store/pkg/cartstore"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// CartUseCase carrito de servidor para usuarios autenticados y combinación con el
// carrito del cliente.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, log *logger.Logger) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo, log: log.Named("cart")}
}

// Get carrito actual con precios vigentes.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	lines, err := uc.cartRepo.Lines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("leer carrito: %w", err)
	}
	out := make([]cartstore.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartstore.Line{ProductID: l.ProductID, Name: l.Name, Price: l.Price, Quantity: l.Quantity})
	}
	return cartResponse(out, true), nil
}

// Add suma quantity a la línea del producto (la crea si no existe). Solo productos activos.
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" || in.Quantity < 1 {
		return nil, fmt.Errorf("%w: productId y quantity >= 1 son requeridos", domain.ErrInvalidInput)
	}
	if _, err := uc.activeProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.AddQuantity(ctx, userID, productID, in.Quantity); err != nil {
		return nil, fmt.Errorf("agregar al carrito: %w", err)
	}
	return uc.Get(ctx, userID)
}

// Update fija la cantidad de una línea existente; quantity <= 0 la elimina.
func (uc *CartUseCase) Update(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error) {
	if quantity <= 0 {
		return uc.Remove(ctx, userID, productID)
	}
	ok, err := uc.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("actualizar carrito: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.Get(ctx, userID)
}

// Remove quita la línea; quitar una línea inexistente no es error.
func (uc *CartUseCase) Remove(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	if _, err := uc.cartRepo.Remove(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("quitar del carrito: %w", err)
	}
	return uc.Get(ctx, userID)
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	if err := uc.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("vaciar carrito: %w", err)
	}
	return nil
}

// Sync combina el carrito del cliente con el de servidor. Sin usuario se devuelve el
// carrito del cliente normalizado, sin persistir. Con usuario cada línea queda con
// max(servidor, cliente), así sincronizar dos veces no duplica cantidades; productos
// inexistentes o inactivos se descartan.
func (uc *CartUseCase) Sync(ctx context.Context, userID string, in dto.SyncCartRequest) (*dto.CartResponse, error) {
	store, err := cartstore.New(cartstore.NewMemoryPersister(in.Items...))
	if err != nil {
		return nil, fmt.Errorf("normalizar carrito: %w", err)
	}
	if userID == "" {
		return cartResponse(store.Lines(), false), nil
	}

	current, err := uc.cartRepo.Lines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("leer carrito: %w", err)
	}
	serverQty := make(map[string]int, len(current))
	for _, l := range current {
		serverQty[l.ProductID] = l.Quantity
	}

	for _, l := range store.Lines() {
		delta := l.Quantity - serverQty[l.ProductID]
		if delta <= 0 {
			continue
		}
		if _, err := uc.activeProduct(ctx, l.ProductID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.log.Debug().Str("product_id", l.ProductID).Msg("sync: producto descartado")
				continue
			}
			return nil, err
		}
		if err := uc.cartRepo.AddQuantity(ctx, userID, l.ProductID, delta); err != nil {
			return nil, fmt.Errorf("sincronizar carrito: %w", err)
		}
	}
	return uc.Get(ctx, userID)
}

func (uc *CartUseCase) activeProduct(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil || p.Status != entity.ProductStatusActive {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func cartResponse(lines []cartstore.Line, persisted bool) *dto.CartResponse {
	if lines == nil {
		lines = []cartstore.Line{}
	}
	return &dto.CartResponse{
		Items:     lines,
		Total:     cartstore.Total(lines),
		ItemCount: cartstore.Count(lines),
		Persisted: persisted,
	}
}
