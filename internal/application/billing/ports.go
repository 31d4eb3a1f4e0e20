package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/invoicedoc"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

// LedgerRepos repositorios ligados a la misma transacción.
type LedgerRepos struct {
	Companies repository.CompanyRepository
	Invoices  repository.InvoiceRepository
	Payments  repository.PaymentRepository
}

// LedgerTxRunner ejecuta una función dentro de una transacción que incluye empresas,
// facturas y pagos. Si fn retorna error se hace rollback.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(repos LedgerRepos) error) error
}

// InvoiceNumberer genera números de factura (INV/YYMM/NNNN).
type InvoiceNumberer interface {
	Next(now time.Time) string
}

// InvoicePDFGenerator dibuja un documento ya normalizado.
type InvoicePDFGenerator interface {
	Generate(ctx context.Context, doc invoicedoc.Document) ([]byte, error)
}

// ReportInvoice factura con sus líneas para la exportación.
type ReportInvoice struct {
	Invoice *entity.Invoice
	Lines   []*entity.InvoiceLineItem
}

// CompanyReport todo lo que se vuelca en el libro de una empresa.
type CompanyReport struct {
	Company     *entity.Company
	Invoices    []ReportInvoice // por created_at ascendente
	Payments    []*entity.CompanyPayment
	GeneratedAt time.Time
	Location    *time.Location
}

// ReportWriter serializa el reporte de una empresa (XLSX).
type ReportWriter interface {
	Write(ctx context.Context, report CompanyReport) ([]byte, error)
}
