package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// ReportUseCase exporta el libro XLSX de una empresa. Solo lectura.
type ReportUseCase struct {
	companies repository.CompanyRepository
	invoices  repository.InvoiceRepository
	payments  repository.PaymentRepository
	writer    ReportWriter
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	companies repository.CompanyRepository,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	writer ReportWriter,
	cfg Config,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		companies: companies,
		invoices:  invoices,
		payments:  payments,
		writer:    writer,
		cfg:       cfg.withDefaults(),
		log:       log.WithComponent("report"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// ExportCompany genera el libro de la empresa y su nombre de archivo.
func (uc *ReportUseCase) ExportCompany(ctx context.Context, userID, companyID string) ([]byte, string, error) {
	report, err := uc.Collect(ctx, userID, companyID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.writer.Write(ctx, *report)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("falló la generación del reporte")
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	return data, ReportFileName(report.Company.Name), nil
}

// Collect reúne empresa, facturas (más antiguas primero) con sus líneas y pagos.
func (uc *ReportUseCase) Collect(ctx context.Context, userID, companyID string) (*CompanyReport, error) {
	company, err := uc.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	invs, err := uc.invoices.List(ctx, repository.InvoiceFilter{UserID: userID, CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invs, func(i, j int) bool { return invs[i].CreatedAt.Before(invs[j].CreatedAt) })

	ids := make([]string, 0, len(invs))
	for _, inv := range invs {
		ids = append(ids, inv.ID)
	}
	lines, err := uc.invoices.GetLineItemsByInvoiceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payments.ListByCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	report := &CompanyReport{
		Company:     company,
		Invoices:    make([]ReportInvoice, 0, len(invs)),
		Payments:    payments,
		GeneratedAt: uc.now(),
		Location:    uc.cfg.Location,
	}
	for _, inv := range invs {
		report.Invoices = append(report.Invoices, ReportInvoice{Invoice: inv, Lines: lines[inv.ID]})
	}
	return report, nil
}

// ReportFileName "{nombre}_Report.xlsx": lo que no es letra o dígito pasa a "_",
// máximo 30 caracteres.
func ReportFileName(companyName string) string {
	var b strings.Builder
	n := 0
	for _, r := range companyName {
		if n == 30 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		n++
	}
	return b.String() + "_Report.xlsx"
}
