package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/application/inventory"
	"github.com/Chirlanio/inmystock/internal/application/reports"
	"github.com/Chirlanio/inmystock/internal/application/usecase"
	"github.com/Chirlanio/inmystock/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	AreaUC         *usecase.AreaUseCase
	RecordMovement *inventory.RecordMovementUseCase
	DeleteMovement *inventory.DeleteMovementUseCase
	MovementQuery  *inventory.MovementQueryUseCase
	ReservationUC  *inventory.ReservationUseCase
	AuditUC        *counting.AuditUseCase
	CountUC        *counting.CountUseCase
	ImportUC       *counting.ImportUseCase
	ReportUC       *reports.ReconciliationUseCase
	PDFGenerator   *pdf.MarotoReportGenerator
	MaxFileBytes   int64
}

// Router registra las rutas de la API. Toda la API exige la identidad del
// gateway (X-Company-ID); no hay rutas públicas salvo /health.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", TenantMiddleware())

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Areas
	areas := api.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Post("/", areaHandler.Create)
	areas.Get("/", areaHandler.List)
	areas.Get("/:id", areaHandler.GetByID)

	// Inventory movements + niveles + reservas
	inv := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.RecordMovement, deps.DeleteMovement, deps.MovementQuery, deps.ReservationUC)
	inv.Post("/movements", movementHandler.Register)
	inv.Get("/movements", movementHandler.List)
	inv.Get("/movements/export", movementHandler.Export)
	inv.Get("/movements/:id", movementHandler.GetByID)
	inv.Delete("/movements/:id", movementHandler.Delete)
	inv.Get("/levels", movementHandler.Levels)
	inv.Post("/reservations", movementHandler.Reserve)
	inv.Post("/reservations/release", movementHandler.Release)

	// Audits + counts anidados
	audits := api.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	countHandler := NewCountHandler(deps.CountUC)
	audits.Post("/", auditHandler.Create)
	audits.Get("/", auditHandler.List)
	audits.Get("/:id", auditHandler.GetByID)
	audits.Put("/:id", auditHandler.Update)
	audits.Delete("/:id", auditHandler.Delete)
	audits.Post("/:id/counts", countHandler.Create)
	audits.Get("/:id/counts", countHandler.ListByAudit)

	// Counts (operaciones sobre una sesión)
	counts := api.Group("/counts")
	importHandler := NewImportHandler(deps.ImportUC, deps.MaxFileBytes)
	counts.Get("/:id", countHandler.GetByID)
	counts.Delete("/:id", countHandler.Delete)
	counts.Post("/:id/start", countHandler.Start)
	counts.Post("/:id/complete", countHandler.Complete)
	counts.Put("/:id/items", countHandler.ReplaceItems)
	counts.Get("/:id/items", countHandler.ListItems)
	counts.Post("/:id/import", importHandler.Import)
	counts.Get("/:id/imports", importHandler.ListByCount)

	// Reports de conciliación
	rep := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFGenerator)
	rep.Get("/stock-vs-count", reportHandler.StockVsCount)
	rep.Get("/stock-vs-count/export", reportHandler.StockVsCountExport)
	rep.Get("/stock-vs-count/pdf", reportHandler.StockVsCountPDF)
	rep.Get("/count-vs-count", reportHandler.CountVsCount)
	rep.Get("/count-vs-count/export", reportHandler.CountVsCountExport)
	rep.Get("/missing-products", reportHandler.MissingProducts)
	rep.Get("/missing-products/export", reportHandler.MissingProductsExport)
}
