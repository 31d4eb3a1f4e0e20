package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/facturacion-india-api/docs"
	"github.com/jhoicas/facturacion-india-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-india-api/internal/application/auth"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/jhoicas/facturacion-india-api/internal/domain/numbering"
	infrapdf "github.com/jhoicas/facturacion-india-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/facturacion-india-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/facturacion-india-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-india-api/pkg/config"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// @title                       Facturación India API
// @version                     1.0
// @description                 Facturación GST: clientes, facturas, pagos, inventario, PDF y Excel.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	loc := cfg.Billing.Location()
	billingCfg := billing.Config{
		DueDays:        cfg.Billing.DueDays,
		JunkRetention:  cfg.Billing.JunkRetention(),
		Tax:            money.TaxPolicy{Enabled: cfg.Billing.TaxEnabled},
		NumberAttempts: cfg.Billing.NumberAttempts,
		Location:       loc,
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewSalesAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := billing.NewCompanyUseCase(companyRepo, txRunner, billingCfg, log)
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, companyRepo, itemRepo,
		numbering.NewGenerator(nil, loc), billingCfg, log,
	)
	paymentUC := billing.NewPaymentUseCase(txRunner, paymentRepo, companyRepo, log)

	// PDF A4 de la factura y libro XLSX por empresa
	pdfUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, settingsRepo, infrapdf.NewMarotoPDFGenerator(), billingCfg, log)
	reportUC := billing.NewReportUseCase(companyRepo, invoiceRepo, paymentRepo, infraxlsx.NewReportWriter(), billingCfg, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 << 20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación India API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(userRepo),
		CompanyUC:   companyUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		PDFUC:       pdfUC,
		ReportUC:    reportUC,
		InventoryUC: usecase.NewInventoryUseCase(itemRepo, log),
		SettingsUC:  usecase.NewSettingsUseCase(settingsRepo),
		AnalyticsUC: analytics.NewSalesReportUseCase(analyticsRepo, loc, log),
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
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
