package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Inventario-asociaciones/internal/application/analytics"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AssociationUC *usecase.AssociationUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	UploadUC      *usecase.ProductUploadUseCase
	LedgerUC      *inventory.StockLedgerUseCase
	StatsUC       *appanalytics.StatsUseCase
	JWTSecret     string
	JWTIssuer     string
	Log           *logger.Logger
	// HealthCheck opcional (ping a la base). Nil = siempre sano.
	HealthCheck func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				log.Warn().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNHEALTHY", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token del proveedor de identidad
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Asociación: solo identidad, todavía puede no existir
	associationHandler := NewAssociationHandler(deps.AssociationUC)
	api.Post("/association", associationHandler.Ensure)
	api.Get("/association", associationHandler.Get)

	// Rutas con tenant resuelto
	scoped := api.Group("", TenantMiddleware(deps.AssociationUC, log))

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := scoped.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC, deps.UploadUC)
	products := scoped.Group("/products")
	products.Post("/", productHandler.Create)
	products.Post("/upload", productHandler.Upload)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	stockHandler := NewStockHandler(deps.LedgerUC)
	stock := scoped.Group("/stock")
	stock.Post("/replenish", stockHandler.Replenish)
	stock.Post("/deduct", stockHandler.Deduct)

	statsHandler := NewStatsHandler(deps.StatsUC)
	stats := scoped.Group("/stats")
	stats.Get("/overview", statsHandler.Overview)
	stats.Get("/categories", statsHandler.Categories)
	stats.Get("/stock-summary", statsHandler.StockSummary)
	stats.Get("/stock-report.pdf", statsHandler.StockReport)
	scoped.Get("/transactions", statsHandler.Transactions)
}
