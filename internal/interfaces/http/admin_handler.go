package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/application/usecase"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// AdminHandler rutas /api/admin. El router antepone RequireAdmin a todas.
type AdminHandler struct {
	products *usecase.ProductUseCase
	orders   *usecase.OrderAdminUseCase
	users    *usecase.UserUseCase
	stats    *usecase.StatsUseCase
	log      *logger.Logger
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(
	products *usecase.ProductUseCase,
	orders *usecase.OrderAdminUseCase,
	users *usecase.UserUseCase,
	stats *usecase.StatsUseCase,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{products: products, orders: orders, users: users, stats: stats, log: log}
}

// ListProducts godoc
// @Summary      Listar productos (todos los estados)
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "active | inactive"
// @Param        search  query  string  false  "Busca en sku y nombre"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/products [get]
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.products.List(c.UserContext(), c.Query("status"), c.Query("search"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "sku, name, price, stock, category, status"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Producto completo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetProductStatus godoc
// @Summary      Activar o desactivar producto
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del producto"
// @Param        body  body  dto.UpdateProductStatusRequest  true  "status"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [patch]
func (h *AdminHandler) SetProductStatus(c *fiber.Ctx) error {
	var in dto.UpdateProductStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.SetStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Eliminar producto
// @Tags         admin
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOrders godoc
// @Summary      Listar órdenes de todos los usuarios
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "pending | processing | shipped | delivered | cancelled"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/orders [get]
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext(), c.Query("status"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Detalle de una orden
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateOrderStatus godoc
// @Summary      Cambiar estado de una orden
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext(), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Obtener usuario
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateUser godoc
// @Summary      Cambiar estado o rol de un usuario
// @Description  Un admin no puede quitarse el rol ni desactivarse a sí mismo.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "status, isAdmin"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.UpdateAccess(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().
		Str("actor_id", GetUserID(c)).
		Str("actor_email", GetUserEmail(c)).
		Str("user_id", out.ID).
		Str("status", out.Status).
		Bool("is_admin", out.IsAdmin).
		Msg("acceso de usuario actualizado")
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de la tienda
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.StoreStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.Get(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
