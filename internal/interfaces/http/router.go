package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/peptide-store/internal/application/auth"
	"github.com/jhoicas/peptide-store/internal/application/checkout"
	"github.com/jhoicas/peptide-store/internal/application/usecase"
	"github.com/jhoicas/peptide-store/pkg/logger"
	"github.com/jhoicas/peptide-store/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	CartUC       *usecase.CartUseCase
	PlaceOrderUC *checkout.PlaceOrderUseCase
	OrderQueryUC *checkout.OrderQueryUseCase
	OrderAdminUC *usecase.OrderAdminUseCase
	UserUC       *usecase.UserUseCase
	StatsUC      *usecase.StatsUseCase
	Metrics      *metrics.Metrics // opcional: sin él no se expone /metrics
	AuthLimiter  *RateLimiter     // opcional: limita register/login
	HealthCheck  func(ctx context.Context) error
	CookieSecure bool
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	var obs httpObserver
	if deps.Metrics != nil {
		obs = deps.Metrics
	}
	app.Use(RequestLogger(log.Named("http"), obs))

	app.Get("/health", healthHandler(deps.HealthCheck))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", SessionMiddleware(deps.AuthUC))

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure, log)
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthLimiter != nil {
		limit = deps.AuthLimiter.Handler()
	}
	authGroup.Post("/register", limit, authHandler.Register)
	authGroup.Post("/login", limit, authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)

	// Catálogo (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)

	// Carrito: /sync acepta visitantes anónimos, el resto requiere sesión
	cart := api.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC, log)
	cart.Post("/sync", cartHandler.Sync)
	cart.Get("/", RequireSession(), cartHandler.Get)
	cart.Post("/", RequireSession(), cartHandler.Add)
	cart.Delete("/", RequireSession(), cartHandler.Clear)
	cart.Put("/:productId", RequireSession(), cartHandler.Update)
	cart.Delete("/:productId", RequireSession(), cartHandler.Remove)

	// Órdenes (requieren sesión)
	orders := api.Group("/orders", RequireSession())
	orderHandler := NewOrderHandler(deps.PlaceOrderUC, deps.OrderQueryUC, deps.CartUC, log)
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Admin: is_admin en DB antes de cualquier acceso a datos
	admin := api.Group("/admin", RequireAdmin(deps.AuthUC))
	adminHandler := NewAdminHandler(deps.ProductUC, deps.OrderAdminUC, deps.UserUC, deps.StatsUC, log)
	admin.Get("/products", adminHandler.ListProducts)
	admin.Post("/products", adminHandler.CreateProduct)
	admin.Put("/products/:id", adminHandler.UpdateProduct)
	admin.Patch("/products/:id", adminHandler.SetProductStatus)
	admin.Delete("/products/:id", adminHandler.DeleteProduct)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Get("/orders/:id", adminHandler.GetOrder)
	admin.Patch("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Patch("/users/:id", adminHandler.UpdateUser)
	admin.Get("/stats", adminHandler.Stats)
}

// healthHandler responde 503 si la verificación de DB falla.
func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
