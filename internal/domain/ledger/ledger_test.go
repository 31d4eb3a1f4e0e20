package ledger_test

import (
	"testing"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEscenario_FacturaPagoRechazoYReversion(t *testing.T) {
	pending := d("2000")

	pending = ledger.ApplyCreate(pending, d("1500"))
	assert.True(t, d("3500").Equal(pending))

	entry, err := ledger.RecordPayment(pending, d("1000"))
	require.NoError(t, err)
	assert.True(t, d("3500").Equal(entry.PreviousBalance))
	assert.True(t, d("2500").Equal(entry.NewBalance))
	pending = entry.NewBalance

	_, err = ledger.RecordPayment(pending, d("9999"))
	assert.ErrorIs(t, err, domain.ErrExceedsPending)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.True(t, d("2500").Equal(pending))

	pending = ledger.ApplyPaymentReversal(pending, entry.Amount)
	assert.True(t, d("3500").Equal(pending))
}

func TestRecordPayment_MontoInvalido(t *testing.T) {
	for _, amt := range []string{"0", "-1"} {
		_, err := ledger.RecordPayment(d("100"), d(amt))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amt)
	}
	entry, err := ledger.RecordPayment(d("100"), d("100"))
	require.NoError(t, err)
	assert.True(t, entry.NewBalance.IsZero())
}

func TestRecordPayment_RedondeaADosDecimales(t *testing.T) {
	entry, err := ledger.RecordPayment(d("100"), d("50.005"))
	require.NoError(t, err)
	assert.Equal(t, "50.01", entry.Amount.String())
	assert.Equal(t, "49.99", entry.NewBalance.String())
	assert.True(t, d("100").Equal(ledger.ApplyPaymentReversal(entry.NewBalance, entry.Amount)))

	_, err = ledger.RecordPayment(d("100"), d("0.004"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.RecordPayment(d("100"), d("100.004"))
	require.NoError(t, err)
	_, err = ledger.RecordPayment(d("100"), d("100.005"))
	assert.ErrorIs(t, err, domain.ErrExceedsPending)
}

func TestApplyEdit_MismoTotalNoCambiaSaldo(t *testing.T) {
	assert.True(t, ledger.EditDelta(d("1500"), d("1500")).IsZero())
	assert.True(t, d("3500").Equal(ledger.ApplyEdit(d("3500"), d("1500"), d("1500"))))
	assert.True(t, d("3700").Equal(ledger.ApplyEdit(d("3500"), d("1500"), d("1700"))))
	assert.True(t, d("3000").Equal(ledger.ApplyEdit(d("3500"), d("1500"), d("1000"))))
}

func TestCrearYBorrar_RegresaAlSaldoInicial(t *testing.T) {
	start := d("750.25")
	after := ledger.ApplyCreate(start, d("1234.56"))
	assert.True(t, d("1984.81").Equal(after))
	assert.True(t, start.Equal(ledger.ApplyDelete(after, d("1234.56"))))
}

// El saldo se recorta a cero en cada paso: se verifica el proceso, no solo la
// identidad aritmética final.
func TestProcesoConRecorte(t *testing.T) {
	pending := decimal.Zero

	pending = ledger.ApplyCreate(pending, d("500")) // 500
	pending = ledger.ApplyEdit(pending, d("500"), d("100"))
	assert.True(t, d("100").Equal(pending))

	// se borra una factura mayor al saldo (p. ej. tras un pago): recorta en 0
	pending = ledger.ApplyDelete(pending, d("300"))
	assert.True(t, pending.IsZero())

	// la suma aritmética daría -200 + 250 = 50; el proceso recortado da 250
	pending = ledger.ApplyCreate(pending, d("250"))
	assert.True(t, d("250").Equal(pending))

	steps := []func(decimal.Decimal) decimal.Decimal{
		func(p decimal.Decimal) decimal.Decimal { return ledger.ApplyDelete(p, d("1000")) },
		func(p decimal.Decimal) decimal.Decimal { return ledger.ApplyEdit(p, d("900"), d("10")) },
		func(p decimal.Decimal) decimal.Decimal { return ledger.ApplyCreate(p, d("-50")) },
	}
	for _, step := range steps {
		pending = step(pending)
		assert.False(t, pending.IsNegative())
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, ledger.CanTransition("", entity.InvoiceStatusSent))
	assert.True(t, ledger.CanTransition(entity.InvoiceStatusSent, entity.InvoiceStatusUpdated))
	assert.True(t, ledger.CanTransition(entity.InvoiceStatusUpdated, entity.InvoiceStatusUpdated))
	assert.True(t, ledger.CanTransition(entity.InvoiceStatusUpdated, ""))
	assert.False(t, ledger.CanTransition(entity.InvoiceStatusUpdated, entity.InvoiceStatusSent))
	assert.False(t, ledger.CanTransition("", entity.InvoiceStatusUpdated))
}
