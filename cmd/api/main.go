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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/application/auth"
	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/changelog"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/jsonstore"
	inframongo "github.com/jhoicas/pos-billing-api/internal/infrastructure/mongo"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-billing-api/internal/interfaces/http"
	"github.com/jhoicas/pos-billing-api/pkg/config"
	"github.com/jhoicas/pos-billing-api/pkg/logger"
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
		Str("mirror", cfg.Storage.MirrorBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones PostgreSQL")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Almacenes de documentos: bills.json es el almacén principal de facturas.
	billStore := jsonstore.NewBillStore(cfg.Storage.DataDir, cfg.Billing.RejectDuplicateBills)
	settingsStore := jsonstore.NewSettingsStore(cfg.Storage.DataDir, decimal.NewFromInt(int64(cfg.Billing.DefaultTaxPercentage)))
	changeLog, err := changelog.NewFileLogger(cfg.Storage.LogDir)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de cambios")
	}

	var mirror repository.ProductMirror
	switch cfg.Storage.MirrorBackend {
	case config.MirrorMongo:
		client, err := inframongo.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		defer func() {
			if err := inframongo.Disconnect(client); err != nil {
				log.Error().Err(err).Msg("desconexión de MongoDB")
			}
		}()
		mirror = inframongo.NewProductMirror(client, cfg.Mongo.Database)
	default:
		mirror = jsonstore.NewProductMirror(cfg.Storage.DataDir)
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	hsnRepo := postgres.NewHSNCodeRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	discountRepo := postgres.NewDiscountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	coordinator := billing.NewCoordinator(
		billStore, changeLog, mirror, txRunner, log,
		cfg.Billing.SentinelCreator, entity.UnknownCreator,
	)
	checkoutUC := billing.NewCheckoutUseCase(
		mirror, customerRepo, storeRepo, settingsStore, coordinator,
		billing.CheckoutConfig{DefaultBillFormat: cfg.Billing.DefaultBillFormat},
	)
	cartUC := billing.NewCartUseCase(mirror, settingsStore)
	billQuery := billing.NewBillQueryUseCase(billStore)
	customerUC := billing.NewCustomerUseCase(customerRepo)

	productUC := usecase.NewProductUseCase(productRepo, mirror, log)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsStore)
	userUC := usecase.NewUserUseCase(userRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	hsnUC := usecase.NewHSNCodeUseCase(hsnRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo)
	discountUC := usecase.NewDiscountUseCase(discountRepo, changeLog, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Billing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CartUC:      cartUC,
		CheckoutUC:  checkoutUC,
		BillQuery:   billQuery,
		SettingsUC:  settingsUC,
		ProductUC:   productUC,
		StoreUC:     storeUC,
		CustomerUC:  customerUC,
		UserUC:      userUC,
		AnalyticsUC: analyticsUC,
		HSNCodeUC:   hsnUC,
		BatchUC:     batchUC,
		DiscountUC:  discountUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
