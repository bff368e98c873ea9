package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/supply-tracker/internal/application/analytics"
	"github.com/jhoicas/supply-tracker/internal/application/catalog"
	"github.com/jhoicas/supply-tracker/internal/application/inventory"
	"github.com/jhoicas/supply-tracker/internal/application/notify"
	"github.com/jhoicas/supply-tracker/internal/application/procurement"
	"github.com/jhoicas/supply-tracker/internal/infrastructure/memory"
	infranotify "github.com/jhoicas/supply-tracker/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/supply-tracker/internal/infrastructure/pdf"
	"github.com/jhoicas/supply-tracker/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/supply-tracker/internal/interfaces/http"
	"github.com/jhoicas/supply-tracker/pkg/config"
	"github.com/jhoicas/supply-tracker/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()

	// Bitácora: siempre a log; además a PostgreSQL si hay base de datos configurada.
	activity := notify.Fanout{infranotify.NewLogActivityNotifier(log.Component("activity"))}
	var activityRepo *postgres.ActivityRepo
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		activityRepo = postgres.NewActivityRepository(pool)
		activity = append(activity, activityRepo)
		log.Info().Msg("bitácora de actividad en PostgreSQL habilitada")
	}

	dispatcher := notify.NewDispatcher(
		activity,
		infranotify.NewLogAlertSink(log.Component("alerts")),
		notify.Options{QueueSize: cfg.Notify.QueueSize, Timeout: cfg.Notify.Timeout()},
		log.Component("notify"),
	)

	inventoryStore := memory.NewInventoryStore()
	procurementStore := memory.NewProcurementStore()

	productUC := catalog.NewProductUseCase(inventoryStore)
	stockLedgerUC := inventory.NewStockLedgerUseCase(inventoryStore, dispatcher, cfg.Inventory.LowStockThreshold)
	draftUC := procurement.NewDraftUseCase(procurementStore, dispatcher)
	requestUC := procurement.NewRequestUseCase(procurementStore, dispatcher, infrapdf.NewPurchaseOrderGenerator(cfg.App.Organization))
	dashboardUC := appanalytics.NewDashboardUseCase(inventoryStore, procurementStore)

	if cfg.Catalog.SeedPath != "" {
		n, err := productUC.SeedFile(ctx, cfg.Catalog.SeedPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Catalog.SeedPath).Msg("carga inicial del catálogo")
		}
		log.Info().Int("products", n).Str("path", cfg.Catalog.SeedPath).Msg("catálogo cargado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Supply Tracker API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	deps := httpRouter.RouterDeps{
		ProductUC:   productUC,
		StockLedger: stockLedgerUC,
		DraftUC:     draftUC,
		RequestUC:   requestUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	}
	if activityRepo != nil {
		deps.Activity = activityRepo
	}
	httpRouter.Router(app, deps)

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
	// Entregar los eventos pendientes antes de cerrar el pool.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del despachador de eventos")
	}

	log.Info().Msg("aplicación detenida")
}
