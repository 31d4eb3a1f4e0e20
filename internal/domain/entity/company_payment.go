package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyPayment asiento de cartera por un pago recibido. Guarda el saldo antes y
// después para auditoría. IdempotencyKey evita aplicar dos veces el mismo pago.
type CompanyPayment struct {
	ID              string
	UserID          string
	CompanyID       string
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	Note            string
	IdempotencyKey  string
	CreatedAt       time.Time
}
