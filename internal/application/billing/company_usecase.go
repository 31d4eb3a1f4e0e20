package billing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// CompanyUseCase casos de uso para empresas (clientes) y su papelera.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	txRunner LedgerTxRunner
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, txRunner LedgerTxRunner, cfg Config, log *logger.Logger) *CompanyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CompanyUseCase{
		repo:     repo,
		txRunner: txRunner,
		cfg:      cfg.withDefaults(),
		log:      log.WithComponent("companies"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CompanyUseCase) WithClock(now func() time.Time) *CompanyUseCase {
	uc.now = now
	return uc
}

// Create crea una empresa. El saldo inicial es opcional y no puede ser negativo.
func (uc *CompanyUseCase) Create(ctx context.Context, userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	gst, err := normalizeGSTIN(in.GSTNo)
	if err != nil {
		return nil, err
	}
	if in.PendingAmount.IsNegative() {
		return nil, domain.NewValidationError("pending_amount", "no puede ser negativo")
	}
	now := uc.now()
	c := &entity.Company{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		GSTNo:         gst,
		PAN:           strings.ToUpper(strings.TrimSpace(in.PAN)),
		Address:       strings.TrimSpace(in.Address),
		State:         strings.TrimSpace(in.State),
		StateCode:     strings.TrimSpace(in.StateCode),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		PendingAmount: money.Round2(in.PendingAmount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(c)
	return &resp, nil
}

// Update actualiza los datos de contacto y, si viene, ajusta el saldo a mano.
func (uc *CompanyUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "requerido")
		}
		c.Name = name
	}
	if in.GSTNo != nil {
		gst, err := normalizeGSTIN(*in.GSTNo)
		if err != nil {
			return nil, err
		}
		c.GSTNo = gst
	}
	if in.PAN != nil {
		c.PAN = strings.ToUpper(strings.TrimSpace(*in.PAN))
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.State != nil {
		c.State = strings.TrimSpace(*in.State)
	}
	if in.StateCode != nil {
		c.StateCode = strings.TrimSpace(*in.StateCode)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.PendingAmount != nil && in.PendingAmount.IsNegative() {
		return nil, domain.NewValidationError("pending_amount", "no puede ser negativo")
	}
	now := uc.now()
	c.UpdatedAt = now
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if in.PendingAmount != nil {
		pending, err := uc.adjustPending(ctx, userID, id, money.Round2(*in.PendingAmount), now)
		if err != nil {
			return nil, err
		}
		c.PendingAmount = pending
	}
	resp := toCompanyResponse(c)
	return &resp, nil
}

// adjustPending fija el saldo a mano, con la fila bloqueada.
func (uc *CompanyUseCase) adjustPending(ctx context.Context, userID, id string, amount decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	err := uc.txRunner.RunLedger(ctx, func(r LedgerRepos) error {
		c, err := activeCompanyForUpdate(ctx, r.Companies, userID, id)
		if err != nil {
			return err
		}
		if c.PendingAmount.Equal(amount) {
			return nil
		}
		if err := r.Companies.UpdatePending(ctx, userID, id, amount, now); err != nil {
			return err
		}
		uc.log.Info().
			Str("company_id", id).
			Str("pending_before", c.PendingAmount.StringFixed(2)).
			Str("pending_after", amount.StringFixed(2)).
			Msg("saldo ajustado manualmente")
		return nil
	})
	return amount, err
}

// Get obtiene una empresa (activa o en la papelera).
func (uc *CompanyUseCase) Get(ctx context.Context, userID, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.response(c)
	return &resp, nil
}

// List lista empresas activas, con búsqueda opcional por nombre o GSTIN.
func (uc *CompanyUseCase) List(ctx context.Context, userID, search string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.Normalize()
	return uc.listPage(ctx, repository.CompanyFilter{
		UserID: userID,
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	}, page)
}

// ListDeleted lista la papelera con los días restantes antes de la purga.
func (uc *CompanyUseCase) ListDeleted(ctx context.Context, userID string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.Normalize()
	return uc.listPage(ctx, repository.CompanyFilter{
		UserID:  userID,
		Deleted: true,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, page)
}

// SoftDelete envía la empresa a la papelera. Facturas y pagos se conservan.
func (uc *CompanyUseCase) SoftDelete(ctx context.Context, userID, id string) error {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.IsDeleted {
		return fmt.Errorf("%w: la empresa ya está en la papelera", domain.ErrConflict)
	}
	if err := uc.repo.SoftDelete(ctx, userID, id, uc.now()); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", id).Msg("empresa enviada a la papelera")
	return nil
}

// Restore saca la empresa de la papelera.
func (uc *CompanyUseCase) Restore(ctx context.Context, userID, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !c.IsDeleted {
		return nil, fmt.Errorf("%w: la empresa no está en la papelera", domain.ErrConflict)
	}
	if err := uc.repo.Restore(ctx, userID, id); err != nil {
		return nil, err
	}
	c.IsDeleted = false
	c.DeletedAt = nil
	uc.log.Info().Str("company_id", id).Msg("empresa restaurada")
	resp := toCompanyResponse(c)
	return &resp, nil
}

// PermanentDelete borra la empresa y, por cascada, sus facturas y pagos.
// Solo se permite desde la papelera.
func (uc *CompanyUseCase) PermanentDelete(ctx context.Context, userID, id string) error {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if !c.IsDeleted {
		return fmt.Errorf("%w: solo se pueden borrar definitivamente empresas en la papelera", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.log.Warn().Str("company_id", id).Msg("empresa eliminada definitivamente")
	return nil
}

// PurgeExpired borra definitivamente las empresas cuya ventana de restauración
// venció. Un fallo individual no detiene el resto.
func (uc *CompanyUseCase) PurgeExpired(ctx context.Context) (*dto.PurgeResult, error) {
	now := uc.now()
	list, err := uc.repo.ListDeletedBefore(ctx, now.Add(-uc.cfg.JunkRetention))
	if err != nil {
		return nil, err
	}
	res := &dto.PurgeResult{Purged: []string{}}
	for _, c := range list {
		if !c.PurgeEligible(now, uc.cfg.JunkRetention) {
			continue
		}
		if err := uc.repo.Delete(ctx, c.UserID, c.ID); err != nil {
			uc.log.Error().Err(err).Str("company_id", c.ID).Msg("no se pudo purgar la empresa")
			res.Failed = append(res.Failed, c.ID)
			continue
		}
		res.Purged = append(res.Purged, c.ID)
	}
	uc.log.Info().Int("purged", len(res.Purged)).Int("failed", len(res.Failed)).Msg("purga de papelera terminada")
	return res, nil
}

func (uc *CompanyUseCase) response(c *entity.Company) dto.CompanyResponse {
	resp := toCompanyResponse(c)
	if c.IsDeleted {
		days := c.DaysUntilPurge(uc.now(), uc.cfg.JunkRetention)
		resp.DaysUntilPurge = &days
	}
	return resp
}

func (uc *CompanyUseCase) listPage(ctx context.Context, f repository.CompanyFilter, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyListResponse{
		Items: make([]dto.CompanyResponse, 0, len(list)),
		Page:  dto.NewPageResponse(page, total),
	}
	for _, c := range list {
		out.Items = append(out.Items, uc.response(c))
	}
	return out, nil
}

// normalizeGSTIN pasa a mayúsculas y valida el formato de 15 caracteres. Vacío es válido.
func normalizeGSTIN(s string) (string, error) {
	gst := strings.ToUpper(strings.TrimSpace(s))
	if gst == "" {
		return "", nil
	}
	if !gstinPattern.MatchString(gst) {
		return "", domain.NewValidationError("gst_no", "GSTIN inválido: %s", gst)
	}
	return gst, nil
}
