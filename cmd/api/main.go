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
	"github.com/spf13/afero"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/application/inventory"
	"github.com/Chirlanio/inmystock/internal/application/reports"
	"github.com/Chirlanio/inmystock/internal/application/usecase"
	infrapdf "github.com/Chirlanio/inmystock/internal/infrastructure/pdf"
	"github.com/Chirlanio/inmystock/internal/infrastructure/postgres"
	"github.com/Chirlanio/inmystock/internal/infrastructure/storage"
	httpRouter "github.com/Chirlanio/inmystock/internal/interfaces/http"
	"github.com/Chirlanio/inmystock/pkg/config"
	"github.com/Chirlanio/inmystock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	auditRepo := postgres.NewStockAuditRepository(pool)
	countRepo := postgres.NewStockCountRepository(pool)
	importRepo := postgres.NewStockCountImportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	fileStore := storage.NewFileStore(afero.NewOsFs(), cfg.Imports.StorageDir)

	productUC := usecase.NewProductUseCase(productRepo)
	areaUC := usecase.NewAreaUseCase(areaRepo)
	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, productRepo, areaRepo)
	deleteMovementUC := inventory.NewDeleteMovementUseCase(txRunner)
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo)
	reservationUC := inventory.NewReservationUseCase(txRunner, productRepo, levelRepo)
	auditUC := counting.NewAuditUseCase(auditRepo, countRepo)
	countUC := counting.NewCountUseCase(countRepo, auditRepo, txRunner)
	importUC := counting.NewImportUseCase(txRunner, countRepo, importRepo, fileStore, log)
	reportUC := reports.NewReconciliationUseCase(countRepo, productRepo, levelRepo)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Imports.MaxFileBytes + 1024*1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "InMyStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		AreaUC:         areaUC,
		RecordMovement: recordMovementUC,
		DeleteMovement: deleteMovementUC,
		MovementQuery:  movementQueryUC,
		ReservationUC:  reservationUC,
		AuditUC:        auditUC,
		CountUC:        countUC,
		ImportUC:       importUC,
		ReportUC:       reportUC,
		PDFGenerator:   pdfGenerator,
		MaxFileBytes:   int64(cfg.Imports.MaxFileBytes),
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
