package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC *usecase.LocationUseCase
	ProductUC  *usecase.ProductUseCase
	LedgerUC   *ledger.StockLedgerUseCase
	MovementUC *ledger.MovementQueryUseCase
	AuthUC     *auth.AuthUseCase
	ReportGen  ledger.StockReportGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Post("/:id/deactivate", locationHandler.Deactivate)
	locations.Post("/:id/activate", locationHandler.Activate)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Stocks (protegido): lecturas, ajuste, traslado, reservas, import/export, reporte.
	// Las rutas fijas van antes que /product/:productId para que no las capture el parámetro.
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.ReportGen)
	importExportHandler := NewImportExportHandler(deps.LedgerUC)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/export", importExportHandler.Export)
	stocks.Get("/report", stockHandler.Report)
	stocks.Post("/import", importExportHandler.Import)
	stocks.Post("/adjust", stockHandler.Adjust)
	stocks.Post("/transfer", stockHandler.Transfer)
	stocks.Post("/reserve", stockHandler.Reserve)
	stocks.Post("/unreserve", stockHandler.Unreserve)
	stocks.Get("/product/:productId", stockHandler.ByProduct)

	// Movements (protegido, solo lectura sobre el journal)
	movements := protected.Group("/inventory")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/movements", movementHandler.List)
}
