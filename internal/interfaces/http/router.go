package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-india-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-india-api/internal/application/auth"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CompanyUC   *billing.CompanyUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	PDFUC       *billing.PDFUseCase
	ReportUC    *billing.ReportUseCase
	InventoryUC *usecase.InventoryUseCase
	SettingsUC  *usecase.SettingsUseCase
	AnalyticsUC *analytics.SalesReportUseCase
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("http")

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Companies + papelera + pagos + reporte
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, log)
	reportHandler := NewReportHandler(deps.ReportUC, log)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/junk", companyHandler.ListDeleted)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Post("/:id/restore", companyHandler.Restore)
	companies.Delete("/:id/permanent", companyHandler.PermanentDelete)
	companies.Get("/:id/payments", paymentHandler.List)
	companies.Post("/:id/payments", paymentHandler.Record)
	companies.Get("/:id/report", reportHandler.ExportCompany)

	payments := protected.Group("/payments")
	payments.Get("/pending", paymentHandler.PendingOverview)
	payments.Delete("/:id", paymentHandler.Delete)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, log)
	invoices := protected.Group("/invoices")
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Get("/search", invoiceHandler.Search)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/cart", invoiceHandler.Cart)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, log)
	inventory := protected.Group("/inventory")
	inventory.Post("/import", inventoryHandler.Import)
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingsUC, log)
	settings := protected.Group("/settings")
	settings.Get("/seller", settingsHandler.GetSeller)
	settings.Put("/seller", settingsHandler.SaveSeller)
	settings.Get("/bank", settingsHandler.GetBank)
	settings.Put("/bank", settingsHandler.SaveBank)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, log)
	protected.Get("/analytics/sales", analyticsHandler.GetSales)
}
