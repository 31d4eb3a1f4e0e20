// Package money reúne la aritmética de montos de factura: importe por línea,
// descuento, subtotal, redondeo, total y saldo corriente.
//
//	Importe     = tarifa × cantidad
//	Descuento   = importe × pct / 100
//	TotalLínea  = importe − descuento
//	Subtotal    = Σ TotalLínea (sin redondear por línea)
//	RoundOff    = Round2(Subtotal) − Subtotal
//	GrandTotal  = Subtotal + RoundOff + Tax
//
// Todos los valores son decimal; el redondeo es a 2 decimales, mitad hacia afuera.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales (mitad hacia afuera del cero).
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// ClampZero devuelve max(0, x).
func ClampZero(x decimal.Decimal) decimal.Decimal {
	if x.IsNegative() {
		return decimal.Zero
	}
	return x
}

// ClampPercent limita un porcentaje a [0, 100].
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// LineAmount tarifa × cantidad (negativos se toman como 0).
func LineAmount(rate, qty decimal.Decimal) decimal.Decimal {
	return ClampZero(rate).Mul(ClampZero(qty))
}

// DiscountAmount importe × pct / 100.
func DiscountAmount(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(ClampPercent(pct)).Div(hundred)
}

// LineTotal importe menos descuento. Siempre <= tarifa × cantidad.
func LineTotal(rate, qty, discountPct decimal.Decimal) decimal.Decimal {
	amount := LineAmount(rate, qty)
	return amount.Sub(DiscountAmount(amount, discountPct))
}

// TaxPolicy controla si el GST suma al total. En la configuración por defecto está
// desactivado y el impuesto siempre vale cero.
type TaxPolicy struct {
	Enabled bool
}

// LineTax GST de la línea según la política.
func (p TaxPolicy) LineTax(lineTotal, gstRate decimal.Decimal) decimal.Decimal {
	if !p.Enabled {
		return decimal.Zero
	}
	return lineTotal.Mul(ClampPercent(gstRate)).Div(hundred)
}

// Line entrada para Compute.
type Line struct {
	Rate     decimal.Decimal
	Quantity decimal.Decimal
	Discount decimal.Decimal
	GSTRate  decimal.Decimal
}

// Totals resultado de Compute.
type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	RoundOff   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Compute calcula los totales de la factura a partir de sus líneas.
func Compute(lines []Line, policy TaxPolicy) Totals {
	t := Totals{
		LineTotals: make([]decimal.Decimal, len(lines)),
		Subtotal:   decimal.Zero,
		Tax:        decimal.Zero,
	}
	for i, l := range lines {
		lt := LineTotal(l.Rate, l.Quantity, l.Discount)
		t.LineTotals[i] = lt
		t.Subtotal = t.Subtotal.Add(lt)
		t.Tax = t.Tax.Add(policy.LineTax(lt, l.GSTRate))
	}
	t.RoundOff = Round2(t.Subtotal).Sub(t.Subtotal)
	t.Tax = Round2(t.Tax)
	t.GrandTotal = t.Subtotal.Add(t.RoundOff).Add(t.Tax)
	return t
}

// TotalsFromLineTotals recalcula subtotal, redondeo y total a partir de totales de
// línea ya calculados (p. ej. leídos de la base de datos).
func TotalsFromLineTotals(lineTotals []decimal.Decimal, tax decimal.Decimal) Totals {
	t := Totals{LineTotals: lineTotals, Subtotal: decimal.Zero}
	for _, lt := range lineTotals {
		t.Subtotal = t.Subtotal.Add(lt)
	}
	t.RoundOff = Round2(t.Subtotal).Sub(t.Subtotal)
	t.Tax = Round2(tax)
	t.GrandTotal = t.Subtotal.Add(t.RoundOff).Add(t.Tax)
	return t
}

// RoundLines redondea cada total de línea a 2 decimales (valor persistido).
func RoundLines(lineTotals []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(lineTotals))
	for i, lt := range lineTotals {
		out[i] = Round2(lt)
	}
	return out
}

// CurrentBalance saldo a mostrar: max(0, anterior + total), a 2 decimales.
func CurrentBalance(previous, grandTotal decimal.Decimal) decimal.Decimal {
	return Round2(ClampZero(previous.Add(grandTotal)))
}
