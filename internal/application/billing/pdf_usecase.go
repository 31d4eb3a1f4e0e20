package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/invoicedoc"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// PDFOptions datos que no se guardan con la factura y se piden al descargar.
type PDFOptions struct {
	MotorVehicleNo string
	// WithBalance imprime saldo anterior y actual de la empresa.
	WithBalance bool
}

// PDFUseCase genera el PDF A4 de una factura guardada.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	companies repository.CompanyRepository
	settings  repository.SettingsRepository
	generator InvoicePDFGenerator
	cfg       Config
	log       *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	companies repository.CompanyRepository,
	settings repository.SettingsRepository,
	generator InvoicePDFGenerator,
	cfg Config,
	log *logger.Logger,
) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{
		invoices:  invoices,
		companies: companies,
		settings:  settings,
		generator: generator,
		cfg:       cfg.withDefaults(),
		log:       log.WithComponent("pdf"),
	}
}

// DownloadInvoicePDF arma el documento con factura, líneas, empresa, emisor y
// banco, y lo dibuja.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe para el usuario.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, userID, invoiceID string, opts PDFOptions) ([]byte, string, error) {
	doc, err := uc.Document(ctx, userID, invoiceID, opts)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.Generate(ctx, doc)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("falló la generación del PDF")
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, doc.FileName, nil
}

// Document devuelve el documento normalizado (también lo usa la vista previa).
func (uc *PDFUseCase) Document(ctx context.Context, userID, invoiceID string, opts PDFOptions) (invoicedoc.Document, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return invoicedoc.Document{}, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return invoicedoc.Document{}, domain.ErrNotFound
	}
	lines, err := uc.invoices.GetLineItems(ctx, inv.ID)
	if err != nil {
		return invoicedoc.Document{}, fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	company, err := uc.companies.GetByID(ctx, userID, inv.CompanyID)
	if err != nil {
		return invoicedoc.Document{}, fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	seller, err := uc.settings.GetSeller(ctx, userID)
	if err != nil {
		return invoicedoc.Document{}, fmt.Errorf("pdf: obtener emisor: %w", err)
	}
	bank, err := uc.settings.GetBank(ctx, userID)
	if err != nil {
		return invoicedoc.Document{}, fmt.Errorf("pdf: obtener banco: %w", err)
	}

	in := invoicedoc.Input{
		Seller: sellerParty(seller),
		Buyer:  buyerParty(company),
		Meta: invoicedoc.Meta{
			InvoiceNo:      inv.Number,
			InvoiceDate:    inv.CreatedAt,
			MotorVehicleNo: strings.TrimSpace(opts.MotorVehicleNo),
		},
		Bank:     bankInfo(bank),
		Items:    docItems(lines),
		Tax:      inv.TaxAmount,
		Location: uc.cfg.Location,
	}
	if opts.WithBalance && company != nil {
		// saldo antes de esta factura: el actual sin su total
		in.PreviousBalance = money.ClampZero(company.PendingAmount.Sub(inv.TotalAmount))
	}
	return invoicedoc.Normalize(in), nil
}

func sellerParty(s *entity.SellerInfo) *invoicedoc.Party {
	if s == nil {
		return nil
	}
	addr := []string{s.Address}
	if city := strings.TrimSpace(strings.Join(nonBlank(s.City, s.Pincode), " - ")); city != "" {
		addr = append(addr, city)
	}
	return &invoicedoc.Party{
		Name:         s.Name,
		AddressLines: addr,
		GSTIN:        s.GSTNo,
		PAN:          s.PAN,
		State:        s.State,
		StateCode:    s.StateCode,
		Contacts:     []string{s.Phone},
		Email:        s.Email,
		Website:      s.Website,
	}
}

func buyerParty(c *entity.Company) *invoicedoc.Party {
	if c == nil {
		return nil
	}
	return &invoicedoc.Party{
		Name:          c.Name,
		AddressLines:  []string{c.Address},
		GSTIN:         c.GSTNo,
		PAN:           c.PAN,
		State:         c.State,
		StateCode:     c.StateCode,
		PlaceOfSupply: c.State,
		Contacts:      []string{c.Phone},
		Email:         c.Email,
	}
}

func bankInfo(b *entity.BankDetails) *invoicedoc.Bank {
	if b == nil {
		return nil
	}
	return &invoicedoc.Bank{
		AccountHolder: b.AccountName,
		BankName:      b.BankName,
		AccountNo:     b.AccountNumber,
		Branch:        b.Branch,
		IFSC:          b.IFSCCode,
		SwiftCode:     b.SwiftCode,
	}
}

func docItems(lines []*entity.InvoiceLineItem) []invoicedoc.Item {
	out := make([]invoicedoc.Item, 0, len(lines))
	for _, li := range lines {
		lt := li.LineTotal
		out = append(out, invoicedoc.Item{
			Description: li.ItemName,
			HSN:         li.ItemHSN,
			Unit:        li.ItemUnit,
			Quantity:    li.Quantity,
			Rate:        li.UnitPrice,
			Discount:    li.Discount,
			LineTotal:   &lt,
			Boxes:       li.Boxes,
			ItemsPerBox: li.ItemsPerBox,
		})
	}
	return out
}

func nonBlank(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
