package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/xlsx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

func TestReportWriter_CuatroHojas(t *testing.T) {
	created := time.Date(2026, 2, 19, 4, 0, 0, 0, time.UTC) // 09:30 IST
	report := billing.CompanyReport{
		Company: &entity.Company{Name: "Buyer Co", State: "Gujarat", PendingAmount: d("3800")},
		Invoices: []billing.ReportInvoice{{
			Invoice: &entity.Invoice{
				Number: "INV/2602/0456", TotalAmount: d("1800"), AmountReceived: d("2000"),
				Status: entity.InvoiceStatusSent, CreatedAt: created,
			},
			Lines: []*entity.InvoiceLineItem{{
				ItemName: "Nut", ItemHSN: "7318", ItemUnit: "pcs",
				Quantity: d("36"), UnitPrice: d("50"), LineTotal: d("1800"),
			}},
		}},
		GeneratedAt: created,
		Location:    ist,
	}

	data, err := xlsx.NewReportWriter().Write(context.Background(), report)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{xlsx.SheetCompany, xlsx.SheetInvoices, xlsx.SheetItems, xlsx.SheetPayments}, f.GetSheetList())

	assert.Equal(t, "Company Report", cell(t, f, xlsx.SheetCompany, "A1"))
	assert.Equal(t, "Buyer Co", cell(t, f, xlsx.SheetCompany, "B3"))
	assert.Equal(t, "N/A", cell(t, f, xlsx.SheetCompany, "B4"))
	assert.Equal(t, "₹3,800.00", cell(t, f, xlsx.SheetCompany, "B8"))
	assert.Equal(t, "1", cell(t, f, xlsx.SheetCompany, "B9"))
	assert.Equal(t, "₹1,800.00", cell(t, f, xlsx.SheetCompany, "B10"))
	assert.Equal(t, "19 Feb 2026, 09:30 AM", cell(t, f, xlsx.SheetCompany, "B11"))

	assert.Equal(t, "Invoice No.", cell(t, f, xlsx.SheetInvoices, "A1"))
	assert.Equal(t, "INV/2602/0456", cell(t, f, xlsx.SheetInvoices, "A2"))
	assert.Equal(t, "0", cell(t, f, xlsx.SheetInvoices, "E2"))
	assert.Equal(t, "1", cell(t, f, xlsx.SheetInvoices, "G2"))

	assert.Equal(t, "Nut", cell(t, f, xlsx.SheetItems, "C2"))
	assert.Equal(t, "1800", cell(t, f, xlsx.SheetItems, "I2"))

	assert.Equal(t, "No payments recorded", cell(t, f, xlsx.SheetPayments, "A1"))
	assert.Equal(t, "", cell(t, f, xlsx.SheetPayments, "A2"))
}

func TestReportWriter_PagosEnOrdenAscendente(t *testing.T) {
	t1 := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)
	report := billing.CompanyReport{
		Company: &entity.Company{Name: "Buyer Co"},
		Payments: []*entity.CompanyPayment{
			{Amount: d("200"), PreviousBalance: d("800"), NewBalance: d("600"), CreatedAt: t2},
			{Amount: d("200"), PreviousBalance: d("1000"), NewBalance: d("800"), Note: "cheque", CreatedAt: t1},
		},
		Location: ist,
	}
	data, err := xlsx.NewReportWriter().Write(context.Background(), report)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, "No items found", cell(t, f, xlsx.SheetItems, "A1"))
	assert.Equal(t, "Date (IST)", cell(t, f, xlsx.SheetPayments, "A1"))
	assert.Equal(t, "1000", cell(t, f, xlsx.SheetPayments, "C2"))
	assert.Equal(t, "cheque", cell(t, f, xlsx.SheetPayments, "E2"))
	assert.Equal(t, "600", cell(t, f, xlsx.SheetPayments, "D3"))
}
