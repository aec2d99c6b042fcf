package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/application/usecase"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// CartHandler carrito de servidor. Todas las rutas requieren sesión salvo /sync.
type CartHandler struct {
	uc  *usecase.CartUseCase
	log *logger.Logger
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *usecase.CartUseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Carrito actual
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito, suma la cantidad.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "productId, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Fijar cantidad de una línea
// @Description  quantity <= 0 elimina la línea.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path  string                     true  "ID del producto"
// @Param        body       body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/{productId} [put]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("productId"), in.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart/{productId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.UserContext(), GetUserID(c), c.Params("productId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Sync godoc
// @Summary      Sincronizar carrito del cliente
// @Description  Con sesión, combina las líneas en el carrito de servidor. Sin sesión devuelve el carrito normalizado sin persistir.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncCartRequest  true  "items"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/cart/sync [post]
func (h *CartHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Sync(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
