package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura: sent -> updated -> (eliminada). paid queda reservado
// para cuando AmountReceived cubra el total.
const (
	InvoiceStatusSent    = "sent"
	InvoiceStatusUpdated = "updated"
	InvoiceStatusPaid    = "paid"
)

// Invoice cabecera de factura. Number se genera una sola vez (INV/YYMM/NNNN).
// TotalAmount siempre coincide con el total calculado de sus líneas al último guardado.
type Invoice struct {
	ID             string
	UserID         string
	CompanyID      string
	Number         string
	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	AmountReceived decimal.Decimal
	Status         string
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BalanceDue total menos lo recibido, nunca negativo.
func (i *Invoice) BalanceDue() decimal.Decimal {
	d := i.TotalAmount.Sub(i.AmountReceived)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
