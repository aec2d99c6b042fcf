package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/peptide-store/docs"
	"github.com/jhoicas/peptide-store/internal/application/auth"
	"github.com/jhoicas/peptide-store/internal/application/checkout"
	"github.com/jhoicas/peptide-store/internal/application/usecase"
	infrapdf "github.com/jhoicas/peptide-store/internal/infrastructure/pdf"
	"github.com/jhoicas/peptide-store/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/peptide-store/internal/interfaces/http"
	"github.com/jhoicas/peptide-store/pkg/config"
	"github.com/jhoicas/peptide-store/pkg/logger"
	"github.com/jhoicas/peptide-store/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)
	productUC := usecase.NewProductUseCase(productRepo)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	orderAdminUC := usecase.NewOrderAdminUseCase(orderRepo, log)
	statsUC := usecase.NewStatsUseCase(statsRepo)

	// Sin pasarela real: el cobro se registra como aceptado.
	placeOrderUC := checkout.NewPlaceOrderUseCase(txRunner, checkout.NoopPaymentCapturer{}, m, log)
	receipts := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	orderQueryUC := checkout.NewOrderQueryUseCase(orderRepo, receipts)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.Cookie.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Cookie.CORSOrigins,
			AllowCredentials: true,
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept",
		}))
	}

	// Swagger UI: http://localhost:<port>/docs
	if doc, err := swag.ReadDoc(); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FilePath:    "swagger.json",
			FileContent: []byte(doc),
			Path:        "docs",
			Title:       docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Err(err).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CartUC:       cartUC,
		PlaceOrderUC: placeOrderUC,
		OrderQueryUC: orderQueryUC,
		OrderAdminUC: orderAdminUC,
		UserUC:       userUC,
		StatsUC:      statsUC,
		Metrics:      m,
		AuthLimiter:  httpRouter.NewRateLimiter(cfg.Auth.RateLimitRPS, cfg.Auth.RateLimitBurst, log.Named("ratelimit")),
		HealthCheck:  pool.Ping,
		CookieSecure: cfg.Cookie.Secure,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
