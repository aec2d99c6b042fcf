package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/usecase"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// ProductHandler catálogo público (solo productos activos).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler del catálogo.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Catálogo de productos activos
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        limit     query  int     false  "Límite (default 50, máx 200)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext(), c.Query("category"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetBySKU godoc
// @Summary      Detalle de producto por SKU
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	out, err := h.uc.GetActiveBySKU(c.UserContext(), c.Params("sku"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
