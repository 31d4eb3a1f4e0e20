// Package xlsx genera el libro de cartera de una empresa con excelize.
package xlsx

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/pkg/inr"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Nombres de hoja, en el orden en que aparecen en el libro.
const (
	SheetCompany  = "Company Info"
	SheetInvoices = "Invoices"
	SheetItems    = "Item Details"
	SheetPayments = "Payment History"
)

const dateLayout = "02 Jan 2006, 03:04 PM"

var _ billing.ReportWriter = (*ReportWriter)(nil)

// ReportWriter implementa billing.ReportWriter.
type ReportWriter struct{}

// NewReportWriter construye el writer.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// Write arma las cuatro hojas y devuelve el .xlsx en memoria.
func (w *ReportWriter) Write(_ context.Context, r billing.CompanyReport) ([]byte, error) {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// La hoja por defecto se renombra para no dejar "Sheet1" vacía.
	if err := f.SetSheetName(f.GetSheetName(0), SheetCompany); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetInvoices, SheetItems, SheetPayments} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	steps := []func(*excelize.File, billing.CompanyReport, *time.Location) error{
		companySheet, invoicesSheet, itemsSheet, paymentsSheet,
	}
	for _, step := range steps {
		if err := step(f, r, loc); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func companySheet(f *excelize.File, r billing.CompanyReport, loc *time.Location) error {
	c := r.Company
	revenue := decimal.Zero
	for _, ri := range r.Invoices {
		revenue = revenue.Add(ri.Invoice.TotalAmount)
	}
	rows := [][]any{
		{"Company Report"},
		{},
		{"Company Name", c.Name},
		{"GST No.", orNA(c.GSTNo)},
		{"Address", orNA(c.Address)},
		{"State", orNA(c.State)},
		{"State Code", orNA(c.StateCode)},
		{"Pending Amount", inr.FormatRupeeSymbol(c.PendingAmount)},
		{"Total Invoices", len(r.Invoices)},
		{"Total Revenue", inr.FormatRupeeSymbol(revenue)},
		{"Report Generated", r.GeneratedAt.In(loc).Format(dateLayout)},
	}
	if err := writeRows(f, SheetCompany, rows); err != nil {
		return err
	}
	return setWidths(f, SheetCompany, 20, 40)
}

func invoicesSheet(f *excelize.File, r billing.CompanyReport, loc *time.Location) error {
	rows := [][]any{{"Invoice No.", "Date (IST)", "Total Amount", "Amount Received", "Balance Due", "Status", "Items Count"}}
	for _, ri := range r.Invoices {
		inv := ri.Invoice
		status := inv.Status
		if status == "" {
			status = entity.InvoiceStatusSent
		}
		rows = append(rows, []any{
			inv.Number,
			inv.CreatedAt.In(loc).Format(dateLayout),
			num(inv.TotalAmount),
			num(inv.AmountReceived),
			num(inv.BalanceDue()),
			status,
			len(ri.Lines),
		})
	}
	if err := writeRows(f, SheetInvoices, rows); err != nil {
		return err
	}
	return setWidths(f, SheetInvoices, 16, 28, 14, 16, 12, 10, 12)
}

func itemsSheet(f *excelize.File, r billing.CompanyReport, loc *time.Location) error {
	header := []any{"Date (IST)", "Invoice No.", "Item Name", "HSN", "Unit", "Quantity", "Unit Price", "Discount %", "Total Amount"}
	var rows [][]any
	for _, ri := range r.Invoices {
		date := ri.Invoice.CreatedAt.In(loc).Format(dateLayout)
		for _, li := range ri.Lines {
			name := li.ItemName
			if name == "" {
				name = "Item"
			}
			unit := li.ItemUnit
			if unit == "" {
				unit = "pcs"
			}
			rows = append(rows, []any{
				date, ri.Invoice.Number, name, li.ItemHSN, unit,
				num(li.Quantity), num(li.UnitPrice), num(li.Discount), num(li.LineTotal.Round(2)),
			})
		}
	}
	if len(rows) == 0 {
		header = []any{"No items found"}
	}
	if err := writeRows(f, SheetItems, append([][]any{header}, rows...)); err != nil {
		return err
	}
	return setWidths(f, SheetItems, 28, 16, 24, 10, 8, 10, 12, 12, 14)
}

func paymentsSheet(f *excelize.File, r billing.CompanyReport, loc *time.Location) error {
	payments := append([]*entity.CompanyPayment(nil), r.Payments...)
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].CreatedAt.Before(payments[j].CreatedAt) })

	header := []any{"Date (IST)", "Amount Received", "Previous Balance", "New Balance", "Note"}
	var rows [][]any
	for _, p := range payments {
		rows = append(rows, []any{
			p.CreatedAt.In(loc).Format(dateLayout),
			num(p.Amount), num(p.PreviousBalance), num(p.NewBalance), p.Note,
		})
	}
	if len(rows) == 0 {
		header = []any{"No payments recorded"}
	}
	if err := writeRows(f, SheetPayments, append([][]any{header}, rows...)); err != nil {
		return err
	}
	return setWidths(f, SheetPayments, 28, 16, 16, 14, 30)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("hoja %s fila %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths ...float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// num convierte a float64 para que la celda quede numérica.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
