package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/cart"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/ledger"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// InvoiceUseCase crea, edita y elimina facturas manteniendo el saldo pendiente
// de la empresa en la misma transacción.
type InvoiceUseCase struct {
	txRunner  LedgerTxRunner
	invoices  repository.InvoiceRepository
	companies repository.CompanyRepository
	items     repository.InventoryItemRepository
	numberer  InvoiceNumberer
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner LedgerTxRunner,
	invoices repository.InvoiceRepository,
	companies repository.CompanyRepository,
	items repository.InventoryItemRepository,
	numberer InvoiceNumberer,
	cfg Config,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:  txRunner,
		invoices:  invoices,
		companies: companies,
		items:     items,
		numberer:  numberer,
		cfg:       cfg.withDefaults(),
		log:       log.WithComponent("ledger"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Preview calcula el carrito sin persistir nada.
func (uc *InvoiceUseCase) Preview(ctx context.Context, userID string, lines []dto.InvoiceLineRequest) (*dto.CartResponse, error) {
	c, err := uc.buildCart(ctx, userID, lines)
	if err != nil {
		return nil, err
	}
	priced, totals, err := c.Priced(uc.cfg.Tax)
	if err != nil {
		return nil, err
	}
	return toCartResponse(priced, totals), nil
}

// Create crea la factura, sus líneas y suma el total al saldo de la empresa.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return nil, domain.NewValidationError("company_id", "requerido")
	}
	c, err := uc.buildCart(ctx, userID, in.Items)
	if err != nil {
		return nil, err
	}
	priced, totals, err := c.Priced(uc.cfg.Tax)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	due := now.AddDate(0, 0, uc.cfg.DueDays)
	var (
		inv         *entity.Invoice
		lines       []*entity.InvoiceLineItem
		companyName string
	)
	err = uc.txRunner.RunLedger(ctx, func(r LedgerRepos) error {
		company, err := activeCompanyForUpdate(ctx, r.Companies, userID, in.CompanyID)
		if err != nil {
			return err
		}
		companyName = company.Name

		inv = &entity.Invoice{
			ID:          uuid.New().String(),
			UserID:      userID,
			CompanyID:   company.ID,
			TotalAmount: totals.GrandTotal,
			TaxAmount:   totals.Tax,
			Status:      entity.InvoiceStatusSent,
			DueDate:     &due,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.insertNumbered(ctx, r.Invoices, inv, now); err != nil {
			return err
		}
		lines = lineItems(inv.ID, priced)
		if err := r.Invoices.CreateLineItems(ctx, lines); err != nil {
			return err
		}

		before := company.PendingAmount
		after := ledger.ApplyCreate(before, inv.TotalAmount)
		if err := r.Companies.UpdatePending(ctx, userID, company.ID, after, now); err != nil {
			return err
		}
		uc.log.Info().
			Str("invoice", inv.Number).
			Str("company_id", company.ID).
			Str("pending_before", before.StringFixed(2)).
			Str("pending_after", after.StringFixed(2)).
			Msg("factura creada")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, companyName, lines), nil
}

// Update reemplaza las líneas de la factura y aplica la diferencia de totales al
// saldo. Si cambia la empresa, el total anterior se descuenta de la empresa vieja
// y el nuevo se suma a la nueva. El número no se regenera.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	c, err := uc.buildCart(ctx, userID, in.Items)
	if err != nil {
		return nil, err
	}
	priced, totals, err := c.Priced(uc.cfg.Tax)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var (
		inv         *entity.Invoice
		lines       []*entity.InvoiceLineItem
		companyName string
	)
	err = uc.txRunner.RunLedger(ctx, func(r LedgerRepos) error {
		inv, err = r.Invoices.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
		}
		if !ledger.CanTransition(inv.Status, entity.InvoiceStatusUpdated) {
			return fmt.Errorf("%w: la factura está en estado %s", domain.ErrConflict, inv.Status)
		}

		prior, next := inv.TotalAmount, totals.GrandTotal
		target := inv.CompanyID
		if in.CompanyID != "" {
			target = in.CompanyID
		}

		if target == inv.CompanyID {
			company, err := activeCompanyForUpdate(ctx, r.Companies, userID, target)
			if err != nil {
				return err
			}
			companyName = company.Name
			before := company.PendingAmount
			after := ledger.ApplyEdit(before, prior, next)
			if err := r.Companies.UpdatePending(ctx, userID, company.ID, after, now); err != nil {
				return err
			}
			uc.log.Info().
				Str("invoice", inv.Number).
				Str("company_id", company.ID).
				Str("delta", ledger.EditDelta(prior, next).StringFixed(2)).
				Str("pending_before", before.StringFixed(2)).
				Str("pending_after", after.StringFixed(2)).
				Msg("factura editada")
		} else {
			name, err := uc.moveInvoice(ctx, r.Companies, userID, inv, target, prior, next, now)
			if err != nil {
				return err
			}
			companyName = name
		}

		if err := r.Invoices.DeleteLineItems(ctx, inv.ID); err != nil {
			return err
		}
		lines = lineItems(inv.ID, priced)
		if err := r.Invoices.CreateLineItems(ctx, lines); err != nil {
			return err
		}

		inv.CompanyID = target
		inv.TotalAmount = next
		inv.TaxAmount = totals.Tax
		inv.Status = entity.InvoiceStatusUpdated
		inv.UpdatedAt = now
		return r.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, companyName, lines), nil
}

// moveInvoice traslada la factura a otra empresa. Las filas se bloquean en orden
// de ID para no cruzar bloqueos con otra transacción.
func (uc *InvoiceUseCase) moveInvoice(
	ctx context.Context,
	companies repository.CompanyRepository,
	userID string,
	inv *entity.Invoice,
	target string,
	prior, next decimal.Decimal,
	now time.Time,
) (string, error) {
	ids := []string{inv.CompanyID, target}
	sort.Strings(ids)
	locked := make(map[string]*entity.Company, 2)
	for _, cid := range ids {
		c, err := companies.GetForUpdate(ctx, userID, cid)
		if err != nil {
			return "", err
		}
		locked[cid] = c
	}
	from, to := locked[inv.CompanyID], locked[target]
	if to == nil || to.IsDeleted {
		return "", fmt.Errorf("empresa %s: %w", target, domain.ErrNotFound)
	}
	if from != nil {
		after := ledger.ApplyDelete(from.PendingAmount, prior)
		if err := companies.UpdatePending(ctx, userID, from.ID, after, now); err != nil {
			return "", err
		}
		uc.log.Info().
			Str("invoice", inv.Number).
			Str("company_id", from.ID).
			Str("pending_before", from.PendingAmount.StringFixed(2)).
			Str("pending_after", after.StringFixed(2)).
			Msg("factura retirada de la empresa anterior")
	}
	after := ledger.ApplyCreate(to.PendingAmount, next)
	if err := companies.UpdatePending(ctx, userID, to.ID, after, now); err != nil {
		return "", err
	}
	uc.log.Info().
		Str("invoice", inv.Number).
		Str("company_id", to.ID).
		Str("pending_before", to.PendingAmount.StringFixed(2)).
		Str("pending_after", after.StringFixed(2)).
		Msg("factura asignada a nueva empresa")
	return to.Name, nil
}

// Delete elimina la factura (las líneas caen por cascada) y descuenta su total.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	now := uc.now()
	return uc.txRunner.RunLedger(ctx, func(r LedgerRepos) error {
		inv, err := r.Invoices.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
		}
		company, err := r.Companies.GetForUpdate(ctx, userID, inv.CompanyID)
		if err != nil {
			return err
		}
		if err := r.Invoices.Delete(ctx, userID, inv.ID); err != nil {
			return err
		}
		if company == nil {
			return nil
		}
		before := company.PendingAmount
		after := ledger.ApplyDelete(before, inv.TotalAmount)
		if err := r.Companies.UpdatePending(ctx, userID, company.ID, after, now); err != nil {
			return err
		}
		uc.log.Info().
			Str("invoice", inv.Number).
			Str("company_id", company.ID).
			Str("pending_before", before.StringFixed(2)).
			Str("pending_after", after.StringFixed(2)).
			Msg("factura eliminada")
		return nil
	})
}

// Get obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoices.GetLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	name := ""
	if company, _ := uc.companies.GetByID(ctx, userID, inv.CompanyID); company != nil {
		name = company.Name
	}
	return toInvoiceResponse(inv, name, lines), nil
}

// List lista facturas (opcionalmente de una empresa), las más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, userID, companyID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.Normalize()
	filter := repository.InvoiceFilter{
		UserID:    userID,
		CompanyID: companyID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	list, err := uc.invoices.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.invoices.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.NewPageResponse(page, total),
	}
	for _, inv := range list {
		out.Items = append(out.Items, *toInvoiceResponse(inv, "", nil))
	}
	return out, nil
}

// Search busca por coincidencia parcial del número y devuelve la más reciente.
func (uc *InvoiceUseCase) Search(ctx context.Context, userID, term string) (*dto.InvoiceResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.NewValidationError("q", "requerido")
	}
	found, err := uc.invoices.SearchByNumber(ctx, userID, term, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("factura %q: %w", term, domain.ErrNotFound)
	}
	return uc.Get(ctx, userID, found[0].ID)
}

// Cart rehidrata una factura guardada como carrito para la pantalla de edición.
func (uc *InvoiceUseCase) Cart(ctx context.Context, userID, id string) (*dto.CartResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoices.GetLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	priced, totals, err := cart.FromLineItems(lines).Priced(uc.cfg.Tax)
	if err != nil {
		return nil, err
	}
	resp := toCartResponse(priced, totals)
	resp.InvoiceID = inv.ID
	resp.Number = inv.Number
	resp.CompanyID = inv.CompanyID
	return resp, nil
}

// insertNumbered asigna un número y reintenta si ya existe para el usuario.
func (uc *InvoiceUseCase) insertNumbered(ctx context.Context, repo repository.InvoiceRepository, inv *entity.Invoice, now time.Time) error {
	for attempt := 1; attempt <= uc.cfg.NumberAttempts; attempt++ {
		inv.Number = uc.numberer.Next(now)
		err := repo.Create(ctx, inv)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		uc.log.Warn().Str("invoice", inv.Number).Int("attempt", attempt).Msg("número de factura repetido, se genera otro")
	}
	return fmt.Errorf("%w: no se pudo asignar un número de factura único tras %d intentos",
		domain.ErrConflict, uc.cfg.NumberAttempts)
}

// buildCart arma el carrito desde la solicitud. Los datos del artículo que no
// vengan en la línea se completan con el catálogo.
func (uc *InvoiceUseCase) buildCart(ctx context.Context, userID string, lines []dto.InvoiceLineRequest) (*cart.Cart, error) {
	c := cart.New()
	for i, l := range lines {
		in := cart.Input{
			Key:    l.Key,
			ItemID: l.ItemID,
			Snapshot: cart.Snapshot{
				Name:    strings.TrimSpace(l.Name),
				HSN:     strings.TrimSpace(l.HSN),
				Unit:    strings.TrimSpace(l.Unit),
				Rate:    l.Rate,
				GSTRate: l.GSTRate,
			},
			UseBoxes:    l.UseBoxes,
			Boxes:       l.Boxes,
			ItemsPerBox: l.ItemsPerBox,
			Quantity:    l.Quantity,
			Discount:    l.Discount,
		}
		if l.ItemID != nil && *l.ItemID != "" && uc.items != nil {
			item, err := uc.items.GetByID(ctx, userID, *l.ItemID)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].item_id", i), "artículo %s no existe", *l.ItemID)
			}
			fillSnapshot(&in.Snapshot, item)
		}
		if err := c.Add(in); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func fillSnapshot(s *cart.Snapshot, item *entity.InventoryItem) {
	if s.Name == "" {
		s.Name = item.Name
	}
	if s.HSN == "" {
		s.HSN = item.HSN
	}
	if s.Unit == "" {
		s.Unit = item.Unit
	}
	if s.Rate.IsZero() {
		s.Rate = item.Rate
	}
	if s.GSTRate.IsZero() {
		s.GSTRate = item.GSTRate
	}
}

func lineItems(invoiceID string, priced []cart.PricedLine) []*entity.InvoiceLineItem {
	out := make([]*entity.InvoiceLineItem, 0, len(priced))
	for i, p := range priced {
		out = append(out, &entity.InvoiceLineItem{
			ID:              uuid.New().String(),
			InvoiceID:       invoiceID,
			InventoryItemID: p.ItemID,
			Position:        i + 1,
			ItemName:        p.Snapshot.Name,
			ItemHSN:         p.Snapshot.HSN,
			ItemUnit:        p.Snapshot.Unit,
			Quantity:        p.Quantity,
			UnitPrice:       p.Snapshot.Rate,
			Discount:        p.Discount,
			TaxRate:         p.Snapshot.GSTRate,
			LineTotal:       p.LineTotal,
			Boxes:           p.Boxes,
			ItemsPerBox:     p.ItemsPerBox,
		})
	}
	return out
}

// activeCompanyForUpdate bloquea la empresa y exige que exista y no esté en la papelera.
func activeCompanyForUpdate(ctx context.Context, repo repository.CompanyRepository, userID, id string) (*entity.Company, error) {
	company, err := repo.GetForUpdate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if company == nil || company.IsDeleted {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return company, nil
}
