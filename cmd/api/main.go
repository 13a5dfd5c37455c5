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
	_ "github.com/jhoicas/Inventario-asociaciones/docs"
	appanalytics "github.com/jhoicas/Inventario-asociaciones/internal/application/analytics"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	infrakafka "github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Inventario-asociaciones/internal/interfaces/http"
	"github.com/jhoicas/Inventario-asociaciones/pkg/config"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	// Migraciones embebidas antes de abrir el pool
	migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	if v, _, err := migrator.Version(); err == nil {
		log.Info().Uint("version", v).Msg("esquema al día")
	}
	if err := migrator.Close(); err != nil {
		log.Warn().Err(err).Msg("cerrar migrador")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	associationRepo := postgres.NewAssociationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Kafka opcional: sin KAFKA_BROKERS los movimientos no se publican
	var publisher inventory.MovementPublisher
	if cfg.Kafka.Enabled() {
		kp, err := infrakafka.Dial(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("conexión a Kafka")
		}
		defer kp.Close()
		publisher = kp
	}

	imageStore := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix, cfg.Upload.MaxMB)
	if err := os.MkdirAll(imageStore.Dir(), 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", imageStore.Dir()).Msg("directorio de imágenes")
	}

	associationUC := usecase.NewAssociationUseCase(associationRepo, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	uploadUC := usecase.NewProductUploadUseCase(productUC, imageStore, log)
	ledgerUC := inventory.NewStockLedgerUseCase(txRunner, productRepo, publisher, log)
	statsUC := appanalytics.NewStatsUseCase(statsRepo, productRepo, transactionRepo, infrapdf.NewStockReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// imagen + formData
		BodyLimit: (cfg.Upload.MaxMB + 1) * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Asociaciones API",
	}))

	app.Static(imageStore.Prefix(), imageStore.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AssociationUC: associationUC,
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		UploadUC:      uploadUC,
		LedgerUC:      ledgerUC,
		StatsUC:       statsUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		Log:           log,
		HealthCheck:   pool.Ping,
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
