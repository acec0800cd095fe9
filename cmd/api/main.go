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
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/jhoicas/brecho-pos/internal/application/analytics"
	"github.com/jhoicas/brecho-pos/internal/application/auth"
	"github.com/jhoicas/brecho-pos/internal/application/consignment"
	"github.com/jhoicas/brecho-pos/internal/application/coupon"
	"github.com/jhoicas/brecho-pos/internal/application/customer"
	"github.com/jhoicas/brecho-pos/internal/application/inventory"
	"github.com/jhoicas/brecho-pos/internal/application/ports"
	"github.com/jhoicas/brecho-pos/internal/application/sales"
	"github.com/jhoicas/brecho-pos/internal/application/state"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/blob"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/brecho-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/brecho-pos/internal/interfaces/http"
	"github.com/jhoicas/brecho-pos/pkg/config"
	"github.com/jhoicas/brecho-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	_ = godotenv.Load()

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
		Str("store", cfg.App.StoreDriver).
		Str("blob", cfg.Blob.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	repos, txRunner, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	blobs, localDir := openBlobStore(cfg, log)

	authUC := auth.NewAuthUseCase(repos.Profiles, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	itemUC := inventory.NewItemUseCase(repos.Items, repos.Vendors, blobs, log)
	saleUC := sales.NewSaleUseCase(repos, txRunner, itemUC, infrapdf.NewMarotoPDFGenerator(), sales.Config{
		StoreName:         cfg.App.StoreName,
		TradeInMultiplier: cfg.Pricing.TradeInMultiplier,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 << 20, // fotos en base64
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Brechó PDV API",
		}))
	}

	if localDir != "" {
		app.Static("/uploads", localDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		VendorUC:    consignment.NewVendorUseCase(repos, txRunner, cfg.Pricing.DefaultCommission, log),
		CustomerUC:  customer.NewCustomerUseCase(repos.Customers, repos.CustomerTxs),
		CouponUC:    coupon.NewCouponUseCase(repos.Coupons),
		SaleUC:      saleUC,
		DashboardUC: analytics.NewDashboardUseCase(repos),
		StateUC:     state.NewStateUseCase(repos),
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

// openStore abre el almacén según STORE_DRIVER. Con postgres aplica las migraciones pendientes.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Repos, repository.TxRunner, func()) {
	switch cfg.App.StoreDriver {
	case "memory":
		store, err := memory.Open(cfg.App.StorePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.App.StorePath).Msg("abrir snapshot del almacén en memoria")
		}
		log.Warn().Str("path", cfg.App.StorePath).Msg("usando almacén en memoria")
		return store.Repos(), store, func() {}
	case "postgres", "":
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", postgres.Describe(cfg.DB)).Msg("conexión a PostgreSQL")
		}
		log.Info().Str("dsn", postgres.Describe(cfg.DB)).Msg("conectado a PostgreSQL")
		return postgres.NewRepos(pool), postgres.NewTxRunner(pool), pool.Close
	default:
		log.Fatal().Str("driver", cfg.App.StoreDriver).Msg("STORE_DRIVER desconocido")
	}
	return repository.Repos{}, nil, func() {}
}

// openBlobStore devuelve el almacén de fotos y, para el driver local, el directorio a servir.
func openBlobStore(cfg *config.Config, log *logger.Logger) (ports.BlobStore, string) {
	switch cfg.Blob.Driver {
	case "supabase":
		if cfg.Blob.SupabaseURL == "" || cfg.Blob.ServiceKey == "" {
			log.Fatal().Msg("BLOB_DRIVER=supabase requiere SUPABASE_URL y SUPABASE_SERVICE_KEY")
		}
		return blob.NewSupabaseStore(cfg.Blob.SupabaseURL, cfg.Blob.ServiceKey, cfg.Blob.Bucket), ""
	case "local", "":
		store, err := blob.NewLocalStore(cfg.Blob.LocalDir, cfg.Blob.PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacén local de imágenes")
		}
		return store, store.Dir()
	}
	log.Fatal().Str("driver", cfg.Blob.Driver).Msg("BLOB_DRIVER desconocido")
	return nil, ""
}
