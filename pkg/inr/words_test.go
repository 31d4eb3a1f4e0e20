package inr_test

import (
	"math"
	"strings"
	"testing"

	"github.com/jhoicas/facturacion-india-api/pkg/inr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{45, "Forty Five"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1800, "One Thousand Eight Hundred"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{250075, "Two Lakh Fifty Thousand Seventy Five"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{1000000000, "One Hundred Crore"},
		{-3500, "Three Thousand Five Hundred"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inr.NumberToWords(tt.n), "n=%d", tt.n)
	}
}

func TestNumberToWords_ExtremosDeInt64(t *testing.T) {
	got := inr.NumberToWords(math.MinInt64)
	assert.Equal(t, "Ninety Two Thousand Two Hundred Thirty Three Crore Seventy Two Lakh Three Thousand "+
		"Six Hundred Eighty Five Crore Forty Seven Lakh Seventy Five Thousand Eight Hundred Eight", got)
	assert.True(t, strings.HasSuffix(inr.NumberToWords(math.MaxInt64), "Eight Hundred Seven"))
}

func TestNumberToWords_NoUsaAgrupacionInternacional(t *testing.T) {
	assert.NotContains(t, inr.NumberToWords(100000), "Hundred Thousand")
	assert.NotContains(t, inr.NumberToWords(10000000), "Million")
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "INR Zero Only", inr.AmountInWords(decimal.Zero))
	assert.Equal(t, "INR One Thousand Eight Hundred Only", inr.AmountInWords(decimal.RequireFromString("1800.00")))
	// los paise se descartan tras redondear a rupias
	assert.Equal(t, "INR Two Only", inr.AmountInWords(decimal.RequireFromString("1.50")))
	assert.Equal(t, "INR One Only", inr.AmountInWords(decimal.RequireFromString("1.49")))
	assert.Equal(t, "INR 0 Only", inr.AmountInWords(decimal.RequireFromString("-10")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", inr.FormatAmount(decimal.Zero))
	assert.Equal(t, "999.50", inr.FormatAmount(decimal.RequireFromString("999.5")))
	assert.Equal(t, "1,234,567.89", inr.FormatAmount(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "1,000.00", inr.FormatAmount(decimal.RequireFromString("-1000")))
	assert.Equal(t, "Rs. 3,500.00", inr.FormatRupees(decimal.NewFromInt(3500)))
	assert.Equal(t, "₹2,500.00", inr.FormatRupeeSymbol(decimal.NewFromInt(2500)))
}
