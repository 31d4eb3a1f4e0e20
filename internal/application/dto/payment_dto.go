package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest body para POST /api/companies/:id/payments.
// La clave de idempotencia llega en el header Idempotency-Key.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// PaymentResponse asiento de pago.
type PaymentResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PendingCompanyDTO empresa con saldo para el resumen de cartera.
type PendingCompanyDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	LastTransaction *time.Time      `json:"last_transaction,omitempty"`
}

// PendingOverviewResponse cartera total y por empresa (mayor saldo primero).
type PendingOverviewResponse struct {
	TotalPending decimal.Decimal     `json:"total_pending"`
	Companies    []PendingCompanyDTO `json:"companies"`
}
