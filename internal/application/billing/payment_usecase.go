package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/ledger"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// PaymentUseCase registra y revierte abonos sobre el saldo de una empresa.
// Los movimientos por facturas no se registran aquí: el historial de pagos solo
// contiene pagos.
type PaymentUseCase struct {
	txRunner  LedgerTxRunner
	payments  repository.PaymentRepository
	companies repository.CompanyRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner LedgerTxRunner,
	payments repository.PaymentRepository,
	companies repository.CompanyRepository,
	log *logger.Logger,
) *PaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{
		txRunner:  txRunner,
		payments:  payments,
		companies: companies,
		log:       log.WithComponent("ledger"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *PaymentUseCase) WithClock(now func() time.Time) *PaymentUseCase {
	uc.now = now
	return uc
}

// Record registra un pago. Con idempotencyKey no vacía, un segundo envío con la
// misma clave devuelve el pago original sin tocar el saldo.
func (uc *PaymentUseCase) Record(ctx context.Context, userID, companyID, idempotencyKey string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	key := strings.TrimSpace(idempotencyKey)
	now := uc.now()
	var payment *entity.CompanyPayment
	err := uc.txRunner.RunLedger(ctx, func(r LedgerRepos) error {
		if key != "" {
			existing, err := r.Payments.GetByIdempotencyKey(ctx, userID, key)
			if err != nil {
				return err
			}
			if existing != nil {
				if existing.CompanyID != companyID {
					return fmt.Errorf("%w: la clave de idempotencia ya se usó con otra empresa", domain.ErrConflict)
				}
				payment = existing
				uc.log.Debug().Str("idempotency_key", key).Msg("pago repetido, se devuelve el original")
				return nil
			}
		}

		company, err := activeCompanyForUpdate(ctx, r.Companies, userID, companyID)
		if err != nil {
			return err
		}
		entry, err := ledger.RecordPayment(company.PendingAmount, in.Amount)
		if err != nil {
			return err
		}
		payment = &entity.CompanyPayment{
			ID:              uuid.New().String(),
			UserID:          userID,
			CompanyID:       company.ID,
			Amount:          entry.Amount,
			PreviousBalance: entry.PreviousBalance,
			NewBalance:      entry.NewBalance,
			Note:            strings.TrimSpace(in.Note),
			IdempotencyKey:  key,
			CreatedAt:       now,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		if err := r.Companies.UpdatePending(ctx, userID, company.ID, entry.NewBalance, now); err != nil {
			return err
		}
		uc.log.Info().
			Str("company_id", company.ID).
			Str("amount", entry.Amount.StringFixed(2)).
			Str("pending_before", entry.PreviousBalance.StringFixed(2)).
			Str("pending_after", entry.NewBalance.StringFixed(2)).
			Msg("pago registrado")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Delete elimina un pago y restituye su monto al saldo.
func (uc *PaymentUseCase) Delete(ctx context.Context, userID, id string) error {
	now := uc.now()
	return uc.txRunner.RunLedger(ctx, func(r LedgerRepos) error {
		p, err := r.Payments.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pago %s: %w", id, domain.ErrNotFound)
		}
		company, err := r.Companies.GetForUpdate(ctx, userID, p.CompanyID)
		if err != nil {
			return err
		}
		if err := r.Payments.Delete(ctx, userID, p.ID); err != nil {
			return err
		}
		if company == nil {
			return nil
		}
		before := company.PendingAmount
		after := ledger.ApplyPaymentReversal(before, p.Amount)
		if err := r.Companies.UpdatePending(ctx, userID, company.ID, after, now); err != nil {
			return err
		}
		uc.log.Info().
			Str("company_id", company.ID).
			Str("amount", p.Amount.StringFixed(2)).
			Str("pending_before", before.StringFixed(2)).
			Str("pending_after", after.StringFixed(2)).
			Msg("pago revertido")
		return nil
	})
}

// List historial de pagos de una empresa, el más reciente primero.
func (uc *PaymentUseCase) List(ctx context.Context, userID, companyID string) ([]*dto.PaymentResponse, error) {
	list, err := uc.payments.ListByCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// PendingOverview cartera total y por empresa activa, mayor saldo primero.
func (uc *PaymentUseCase) PendingOverview(ctx context.Context, userID string) (*dto.PendingOverviewResponse, error) {
	list, err := uc.companies.List(ctx, repository.CompanyFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	out := &dto.PendingOverviewResponse{
		TotalPending: decimal.Zero,
		Companies:    make([]dto.PendingCompanyDTO, 0, len(list)),
	}
	for _, c := range list {
		if !c.PendingAmount.IsPositive() {
			continue
		}
		out.TotalPending = out.TotalPending.Add(c.PendingAmount)
		out.Companies = append(out.Companies, dto.PendingCompanyDTO{
			ID:              c.ID,
			Name:            c.Name,
			PendingAmount:   c.PendingAmount,
			LastTransaction: c.LastTransaction,
		})
	}
	sort.SliceStable(out.Companies, func(i, j int) bool {
		return out.Companies[i].PendingAmount.GreaterThan(out.Companies[j].PendingAmount)
	})
	return out, nil
}
