package inr

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount devuelve el valor absoluto con 2 decimales y separador de miles
// occidental: 1234567.891 -> "1,234,567.89".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n := decimal.RequireFromString(intPart).IntPart()
	return printer.Sprintf("%d", n) + "." + frac
}

// FormatRupees antepone "Rs. " al monto formateado.
func FormatRupees(amount decimal.Decimal) string {
	return "Rs. " + FormatAmount(amount)
}

// FormatRupeeSymbol usa el símbolo ₹ (hojas de cálculo).
func FormatRupeeSymbol(amount decimal.Decimal) string {
	s := FormatAmount(amount)
	if amount.IsNegative() {
		return "-₹" + s
	}
	return "₹" + s
}
