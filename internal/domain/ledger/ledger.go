// Package ledger define las transiciones del saldo pendiente de un cliente.
// Cada función es pura: recibe el saldo actual y devuelve el nuevo, siempre >= 0.
//
//	Crear factura   nuevo = max(0, actual + total)
//	Editar factura  nuevo = max(0, actual + (totalNuevo − totalAnterior))
//	Borrar factura  nuevo = max(0, actual − total)
//	Registrar pago  nuevo = max(0, actual − monto)   (monto <= actual, si no se rechaza)
//	Borrar pago     nuevo = actual + monto
package ledger

import (
	"fmt"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// ApplyCreate saldo tras crear una factura.
func ApplyCreate(pending, total decimal.Decimal) decimal.Decimal {
	return money.ClampZero(pending.Add(total))
}

// EditDelta diferencia a aplicar al editar: nuevo − anterior.
func EditDelta(prior, next decimal.Decimal) decimal.Decimal {
	return next.Sub(prior)
}

// ApplyEdit saldo tras editar una factura cuyo total pasa de prior a next.
func ApplyEdit(pending, prior, next decimal.Decimal) decimal.Decimal {
	return money.ClampZero(pending.Add(EditDelta(prior, next)))
}

// ApplyDelete saldo tras borrar una factura.
func ApplyDelete(pending, total decimal.Decimal) decimal.Decimal {
	return money.ClampZero(pending.Sub(total))
}

// PaymentEntry resultado de registrar un pago: los saldos antes y después.
type PaymentEntry struct {
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
}

// RecordPayment valida y aplica un pago. Un monto no positivo o mayor al saldo
// se rechaza; no se recorta.
func RecordPayment(pending, amount decimal.Decimal) (PaymentEntry, error) {
	// El monto se guarda con 2 decimales; se valida ya redondeado.
	amount = money.Round2(amount)
	pending = money.Round2(pending)
	if !amount.IsPositive() {
		return PaymentEntry{}, domain.NewValidationError("amount", "el monto debe ser mayor a cero")
	}
	if amount.GreaterThan(pending) {
		return PaymentEntry{}, fmt.Errorf("%w: monto %s, pendiente %s",
			domain.ErrExceedsPending, amount.StringFixed(2), pending.StringFixed(2))
	}
	return PaymentEntry{
		Amount:          amount,
		PreviousBalance: pending,
		NewBalance:      money.ClampZero(pending.Sub(amount)),
	}, nil
}

// ApplyPaymentReversal saldo tras borrar un pago: se restituye el monto.
func ApplyPaymentReversal(pending, amount decimal.Decimal) decimal.Decimal {
	return money.ClampZero(pending.Add(amount))
}

// CanTransition valida el ciclo de vida de la factura: "" (ausente) -> sent -> updated -> "".
// updated -> updated es válido (ediciones sucesivas); nunca se vuelve a sent.
func CanTransition(from, to string) bool {
	switch from {
	case "":
		return to == entity.InvoiceStatusSent
	case entity.InvoiceStatusSent, entity.InvoiceStatusPaid:
		return to == entity.InvoiceStatusUpdated || to == ""
	case entity.InvoiceStatusUpdated:
		return to == entity.InvoiceStatusUpdated || to == ""
	default:
		return false
	}
}
