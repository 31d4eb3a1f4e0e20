package money_test

import (
	"testing"

	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2_MitadHaciaAfuera(t *testing.T) {
	assert.True(t, d("1.01").Equal(money.Round2(d("1.005"))))
	assert.True(t, d("-1.01").Equal(money.Round2(d("-1.005"))))
	assert.True(t, d("2.34").Equal(money.Round2(d("2.344"))))
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name                 string
		rate, qty, pct, want string
	}{
		{"sin descuento", "50", "36", "0", "1800"},
		{"10 por ciento", "100", "3", "10", "270"},
		{"descuento total", "99.99", "7", "100", "0"},
		{"descuento fraccional", "12.50", "3", "7.5", "34.6875"},
		{"descuento mayor a 100 se limita", "10", "1", "150", "0"},
		{"tarifa negativa se toma como cero", "-5", "2", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.LineTotal(d(tt.rate), d(tt.qty), d(tt.pct))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

// Para tarifa y cantidad no negativas y descuento en [0,100]:
// total = tarifa·cantidad·(1−pct/100) y nunca supera tarifa·cantidad.
func TestLineTotal_Propiedades(t *testing.T) {
	rates := []string{"0", "0.01", "1", "49.99", "1234.56"}
	qtys := []string{"0", "1", "3", "36", "1000"}
	pcts := []string{"0", "0.5", "12.5", "33.33", "99.99", "100"}
	for _, r := range rates {
		for _, q := range qtys {
			for _, p := range pcts {
				got := money.LineTotal(d(r), d(q), d(p))
				gross := d(r).Mul(d(q))
				want := gross.Mul(decimal.NewFromInt(1).Sub(d(p).Div(decimal.NewFromInt(100))))
				assert.True(t, want.Equal(got), "r=%s q=%s p=%s got=%s want=%s", r, q, p, got, want)
				assert.True(t, got.LessThanOrEqual(gross))
				assert.False(t, got.IsNegative())
			}
		}
	}
}

func TestCompute_SubtotalRedondeoYTotal(t *testing.T) {
	lines := []money.Line{
		{Rate: d("12.50"), Quantity: d("3"), Discount: d("7.5")}, // 34.6875
		{Rate: d("10.01"), Quantity: d("1"), Discount: d("0")},   // 10.01
		{Rate: d("0.333"), Quantity: d("3"), Discount: d("0")},   // 0.999
	}
	got := money.Compute(lines, money.TaxPolicy{})

	assert.True(t, d("45.6965").Equal(got.Subtotal), "subtotal %s", got.Subtotal)
	assert.True(t, d("0.0035").Equal(got.RoundOff), "roundoff %s", got.RoundOff)
	assert.True(t, d("45.70").Equal(got.GrandTotal), "grand %s", got.GrandTotal)
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.RoundOff.Abs().LessThan(d("0.01")))
	assert.True(t, got.GrandTotal.Equal(got.Subtotal.Add(got.RoundOff)))

	sum := decimal.Zero
	for _, lt := range got.LineTotals {
		sum = sum.Add(lt)
	}
	assert.True(t, sum.Equal(got.Subtotal))
}

func TestCompute_ImpuestoSoloConPoliticaActiva(t *testing.T) {
	lines := []money.Line{{Rate: d("100"), Quantity: d("2"), GSTRate: d("18")}}

	off := money.Compute(lines, money.TaxPolicy{})
	assert.True(t, off.Tax.IsZero())
	assert.True(t, d("200").Equal(off.GrandTotal))

	on := money.Compute(lines, money.TaxPolicy{Enabled: true})
	assert.True(t, d("36").Equal(on.Tax))
	assert.True(t, d("236").Equal(on.GrandTotal))
}

func TestCompute_SinLineas(t *testing.T) {
	got := money.Compute(nil, money.TaxPolicy{})
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.GrandTotal.IsZero())
}

func TestTotalsFromLineTotals_CoincideConCompute(t *testing.T) {
	lines := []money.Line{
		{Rate: d("12.50"), Quantity: d("3"), Discount: d("7.5")},
		{Rate: d("50"), Quantity: d("36")},
	}
	a := money.Compute(lines, money.TaxPolicy{})
	b := money.TotalsFromLineTotals(a.LineTotals, decimal.Zero)
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal))
	assert.True(t, a.RoundOff.Equal(b.RoundOff))
}

func TestRoundLines_TotalCoincideConLineasGuardadas(t *testing.T) {
	lines := []money.Line{
		{Rate: d("10"), Quantity: d("1"), Discount: d("33.33")},
		{Rate: d("10"), Quantity: d("1"), Discount: d("33.33")},
		{Rate: d("10"), Quantity: d("1"), Discount: d("33.33")},
	}
	exact := money.Compute(lines, money.TaxPolicy{})
	assert.True(t, d("20.001").Equal(exact.Subtotal))

	rounded := money.RoundLines(exact.LineTotals)
	for _, lt := range rounded {
		assert.Equal(t, "6.67", lt.StringFixed(2))
		assert.True(t, lt.Equal(lt.Round(2)))
	}
	got := money.TotalsFromLineTotals(rounded, decimal.Zero)
	assert.True(t, d("20.01").Equal(got.Subtotal))
	assert.True(t, got.RoundOff.IsZero())
	assert.True(t, d("20.01").Equal(got.GrandTotal))
}

func TestCurrentBalance(t *testing.T) {
	assert.True(t, d("3500").Equal(money.CurrentBalance(d("2000"), d("1500"))))
	assert.True(t, money.CurrentBalance(d("-5000"), d("1500")).IsZero())
	assert.True(t, d("0.01").Equal(money.CurrentBalance(d("0"), d("0.005"))))
}
