// Package inr agrupa utilidades de presentación para montos en rupias:
// importe en letras con agrupación india (crore, lakh, thousand, hundred)
// y formato numérico con separadores de miles.
package inr

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords convierte un entero a palabras con agrupación india.
// 0 -> "Zero", 100000 -> "One Lakh", 10000000 -> "One Crore".
// Los negativos se expresan por su valor absoluto.
func NumberToWords(n int64) string {
	// el valor absoluto se toma en uint64 para que math.MinInt64 no desborde
	u := uint64(n)
	if n < 0 {
		u = -u
	}
	if u == 0 {
		return "Zero"
	}
	return strings.Join(groups(u), " ")
}

func groups(n uint64) []string {
	var parts []string
	if c := n / crore; c > 0 {
		// más de 99 crore: la cantidad de crores también va con agrupación india
		if c > 99 {
			parts = append(parts, groups(c)...)
		} else {
			parts = append(parts, twoDigits(c))
		}
		parts = append(parts, "Crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, twoDigits(l), "Lakh")
		n %= lakh
	}
	if t := n / thousand; t > 0 {
		parts = append(parts, twoDigits(t), "Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, threeDigits(n))
	}
	return parts
}

func twoDigits(n uint64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

func threeDigits(n uint64) string {
	h, rest := n/100, n%100
	switch {
	case h > 0 && rest > 0:
		return ones[h] + " Hundred " + twoDigits(rest)
	case h > 0:
		return ones[h] + " Hundred"
	default:
		return twoDigits(rest)
	}
}

// AmountInWords redondea a rupias enteras (mitad hacia afuera) y devuelve
// "INR <palabras> Only". Los paise no aparecen en letras.
// Un monto negativo produce "INR 0 Only".
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "INR 0 Only"
	}
	rupees := amount.Round(0).IntPart()
	return "INR " + NumberToWords(rupees) + " Only"
}
