package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// ProductUseCase catálogo público (solo activos) y CRUD de admin.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// ListActive lista el catálogo visible, opcionalmente filtrado por categoría.
func (uc *ProductUseCase) ListActive(ctx context.Context, category string, limit, offset int) (*dto.ProductListResponse, error) {
	return uc.list(ctx, repository.ProductFilter{
		Status:   entity.ProductStatusActive,
		Category: strings.TrimSpace(category),
		Limit:    limit,
		Offset:   offset,
	})
}

// GetActiveBySKU detalle público. Un producto inactivo se trata como inexistente.
func (uc *ProductUseCase) GetActiveBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil || p.Status != entity.ProductStatusActive {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(p), nil
}

// List listado de admin: todos los estados, búsqueda por nombre o SKU.
func (uc *ProductUseCase) List(ctx context.Context, status, search string, limit, offset int) (*dto.ProductListResponse, error) {
	if status != "" && !entity.ValidProductStatus(status) {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
	}
	return uc.list(ctx, repository.ProductFilter{
		Status: status,
		Search: strings.TrimSpace(search),
		Limit:  limit,
		Offset: offset,
	})
}

func (uc *ProductUseCase) list(ctx context.Context, f repository.ProductFilter) (*dto.ProductListResponse, error) {
	f.Limit, f.Offset = normalizePage(f.Limit, f.Offset)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// GetByID detalle de admin (cualquier estado).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(p), nil
}

// Create crea un producto. SKU repetido devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, fmt.Errorf("verificar sku: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// Update reemplaza todos los campos editables (PUT).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return nil, fmt.Errorf("verificar sku: %w", err)
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}
	product.SKU = in.SKU
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.Category = in.Category
	product.Status = in.Status
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// SetStatus activa o desactiva un producto (PATCH).
func (uc *ProductUseCase) SetStatus(ctx context.Context, id, status string) (*dto.ProductResponse, error) {
	if !entity.ValidProductStatus(status) {
		return nil, fmt.Errorf("%w: status debe ser active o inactive", domain.ErrInvalidInput)
	}
	ok, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el producto; las líneas de carrito caen en cascada y las órdenes
// conservan su copia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func validateProduct(in dto.CreateProductRequest) (dto.CreateProductRequest, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	if in.SKU == "" || in.Name == "" {
		return in, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return in, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return in, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = entity.ProductStatusActive
	}
	if !entity.ValidProductStatus(in.Status) {
		return in, fmt.Errorf("%w: status debe ser active o inactive", domain.ErrInvalidInput)
	}
	in.Price = in.Price.Round(2)
	return in, nil
}
