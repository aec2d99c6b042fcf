package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/checkout"
	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/application/usecase"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// OrderHandler checkout e historial de órdenes del usuario.
type OrderHandler struct {
	placeUC *checkout.PlaceOrderUseCase
	queryUC *checkout.OrderQueryUseCase
	cartUC  *usecase.CartUseCase
	log     *logger.Logger
}

// NewOrderHandler construye el handler. cartUC puede ser nil (no se vacía el carrito de servidor).
func NewOrderHandler(placeUC *checkout.PlaceOrderUseCase, queryUC *checkout.OrderQueryUseCase, cartUC *usecase.CartUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{placeUC: placeUC, queryUC: queryUC, cartUC: cartUC, log: log}
}

// Place godoc
// @Summary      Crear orden (checkout)
// @Description  Valida el carrito, calcula totales, cobra y persiste la orden con sus líneas en una transacción.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "items, shippingAddress, shippingMethod, notes"
// @Success      201   {object}  dto.PlaceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	userID := GetUserID(c)
	out, err := h.placeUC.PlaceOrder(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	// la orden ya está confirmada: un fallo al vaciar el carrito no la revierte
	if h.cartUC != nil {
		if err := h.cartUC.Clear(c.UserContext(), userID); err != nil {
			h.log.Warn().Err(err).
				Str("user_id", userID).
				Str("order_number", out.OrderNumber).
				Msg("no se pudo vaciar el carrito tras la orden")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Mis órdenes
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.queryUC.ListForUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una orden propia
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.queryUC.GetForUser(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una orden propia
// @Tags         orders
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.queryUC.Receipt(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
