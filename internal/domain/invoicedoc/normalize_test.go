package invoicedoc_test

import (
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/domain/invoicedoc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalize_EntradaVaciaNoFalla(t *testing.T) {
	doc := invoicedoc.Normalize(invoicedoc.Input{})

	assert.Equal(t, invoicedoc.Title, doc.Title)
	assert.Equal(t, invoicedoc.FallbackSellerName, doc.Seller.Name)
	assert.Equal(t, invoicedoc.FallbackBuyerName, doc.Buyer.Name)
	assert.Equal(t, []string{invoicedoc.Blank}, doc.Seller.AddressLines)
	assert.Equal(t, "Invoice.pdf", doc.FileName)
	assert.Equal(t, "INR Zero Only", doc.AmountInWords)
	assert.Equal(t, "Rs. 0.00", doc.Totals.GrandTotalText)
	assert.False(t, doc.ShowPreviousBalance)
	assert.Empty(t, doc.Rows)
	assert.Len(t, doc.MetaRows, 8)
	assert.Equal(t, "for Seller", doc.SignatureFor)

	for _, r := range doc.MetaRows {
		assert.NotEmpty(t, r.LeftLabel)
		assert.NotEmpty(t, r.LeftValue)
		assert.NotEmpty(t, r.RightLabel)
		assert.NotEmpty(t, r.RightValue)
	}
	for _, b := range doc.BankRows {
		assert.NotEmpty(t, b.Value)
	}
}

func TestNormalize_ColumnasSuman100(t *testing.T) {
	doc := invoicedoc.Normalize(invoicedoc.Input{})
	sum := 0
	for _, c := range doc.Columns {
		sum += c.WidthPct
	}
	assert.Equal(t, 100, sum)
	require.Len(t, doc.Columns, 7)
	assert.Equal(t, "Sl No.", doc.Columns[0].Header)
	assert.Equal(t, 33, doc.Columns[1].WidthPct)
	assert.Equal(t, 19, doc.Columns[6].WidthPct)
}

func TestNormalize_FacturaCompleta(t *testing.T) {
	in := invoicedoc.Input{
		Seller: &invoicedoc.Party{
			Name:         "Acme Traders",
			AddressLines: []string{"Plot 2\nGIDC", "  "},
			GSTIN:        "26AAAAA0000A1Z5",
			State:        "Gujarat",
			StateCode:    "24",
			Contacts:     []string{"+91 90000 00000", ""},
		},
		Buyer: &invoicedoc.Party{Name: "Buyer Co", State: "Maharashtra", StateCode: "27"},
		Meta: invoicedoc.Meta{
			InvoiceNo:      "INV/2402/0456",
			InvoiceDate:    time.Date(2024, 2, 19, 9, 0, 0, 0, time.UTC),
			MotorVehicleNo: "GJ-15-AB-1234",
		},
		Bank: &invoicedoc.Bank{BankName: "Yes Bank", AccountNo: "0256", Branch: "Silvassa", IFSC: "YESB0000256"},
		Items: []invoicedoc.Item{
			{Description: "Bolt", Unit: "pcs", Quantity: d("36"), Rate: d("50"), Boxes: 3, ItemsPerBox: 12},
			{Description: " ", Unit: "kg", Quantity: d("2.5"), Rate: d("10.333")},
		},
		PreviousBalance: d("2000"),
	}
	doc := invoicedoc.Normalize(in)

	assert.Equal(t, "Invoice_INV_2402_0456.pdf", doc.FileName)
	assert.Equal(t, []string{"Plot 2", "GIDC"}, doc.Seller.AddressLines)
	assert.Equal(t, "State Name : Gujarat, Code : 24", doc.Seller.StateLine)
	assert.Equal(t, "Contact : +91 90000 00000", doc.Seller.Contact)
	assert.Equal(t, "Place of Supply : Maharashtra", doc.Buyer.PlaceOfSupply)
	assert.Equal(t, "19 Feb 2024, 02:30 PM", doc.InvoiceDate)
	assert.Equal(t, "Cash/Bank", doc.MetaRows[1].RightValue)
	assert.Equal(t, "GJ-15-AB-1234", doc.MetaRows[6].RightValue)
	assert.Equal(t, "Yes Bank", doc.BankRows[1].Value)
	assert.Equal(t, "Silvassa, YESB0000256", doc.BankRows[3].Value)
	assert.Equal(t, "Acme Traders", doc.BankRows[0].Value)

	require.Len(t, doc.Rows, 2)
	boxes := doc.Rows[0]
	assert.Equal(t, "1", boxes.SlNo)
	assert.Equal(t, "12NOS X 3 BOX", boxes.DescriptionLine2)
	assert.Equal(t, "36 pcs", boxes.Quantity)
	assert.Equal(t, "3", boxes.Boxes)
	assert.Equal(t, "12", boxes.ItemsPerBox)
	assert.Equal(t, "50.00", boxes.Rate)
	assert.Equal(t, "Rs. 1,800.00", boxes.Amount)

	plain := doc.Rows[1]
	assert.Equal(t, invoicedoc.FallbackItemName, plain.Description)
	assert.Empty(t, plain.DescriptionLine2)
	assert.Equal(t, invoicedoc.Blank, plain.Boxes)
	assert.Equal(t, invoicedoc.Blank, plain.ItemsPerBox)
	assert.Equal(t, "2.5 kg", plain.Quantity)
	assert.Equal(t, "10.33", plain.Rate)
	assert.Equal(t, "Rs. 25.83", plain.Amount) // 10.33 × 2.5 = 25.825

	assert.Equal(t, "38.5", doc.TotalQuantity)
	assert.Equal(t, "3", doc.TotalBoxes)
	assert.True(t, d("1825.825").Equal(doc.Totals.Subtotal))
	assert.True(t, d("1825.83").Equal(doc.Totals.GrandTotal))
	assert.Equal(t, "Rs. 1,825.83", doc.Totals.GrandTotalText)
	assert.Equal(t, "Rs. 0.01", doc.Totals.RoundOffText)
	assert.Equal(t, "INR One Thousand Eight Hundred Twenty Six Only", doc.AmountInWords)

	assert.True(t, doc.ShowPreviousBalance)
	assert.Equal(t, "Rs. 2,000.00 Dr", doc.Totals.PreviousBalanceText)
	assert.Equal(t, "Rs. 3,825.83 Dr", doc.Totals.CurrentBalanceText)
}

func TestNormalize_UsaTotalDeLineaGuardado(t *testing.T) {
	lt := d("1710")
	doc := invoicedoc.Normalize(invoicedoc.Input{
		Items: []invoicedoc.Item{{Description: "Bolt", Quantity: d("36"), Rate: d("50"), Discount: d("5"), LineTotal: &lt}},
	})
	assert.Equal(t, "Rs. 1,710.00", doc.Rows[0].Amount)
	assert.True(t, d("1710").Equal(doc.Totals.GrandTotal))
}

func TestNormalize_SaldoAnteriorNegativoSeRecorta(t *testing.T) {
	doc := invoicedoc.Normalize(invoicedoc.Input{
		Items:           []invoicedoc.Item{{Description: "x", Quantity: d("1"), Rate: d("100")}},
		PreviousBalance: d("-500"),
	})
	assert.False(t, doc.ShowPreviousBalance)
	assert.Equal(t, "Rs. 100.00 Dr", doc.Totals.CurrentBalanceText)
}
