// Package pdf dibuja la factura A4 a partir de un invoicedoc.Document ya
// normalizado. No calcula montos ni resuelve valores por defecto.
//
// Layout de la página A4 (grilla de 100 columnas = anchos en porcentaje):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                     Order Estimates                          │
//	│  EMISOR (60%): nombre, dirección,  │  META (40%): 8 filas    │
//	│  GSTIN, estado, contacto           │  Invoice No. | Dated …  │
//	│  Buyer (Bill to): nombre, dirección, PAN, estado, suministro │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Sl | Description | Qty | Boxes | Per box | Rate | Amount    │
//	│  Total                          Σqty  Σboxes  Subtotal  Rs.  │
//	│  Round Off                                             Rs.   │
//	│  Grand Total                                           Rs.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Importe en letras / E. & O.E  │  Previous / Current Balance │
//	│  Declaration                   │  Company's Bank Details     │
//	│                                │  for … / Authorised Sign.   │
//	│            This is a Computer Generated Invoice              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/domain/invoicedoc"
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// gridSize grilla de 100 columnas: los anchos del documento se usan tal cual.
const gridSize = 100

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBlack  = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGray   = &props.Color{Red: 90, Green: 90, Blue: 90}
	colorHeader = &props.Color{Red: 235, Green: 235, Blue: 235}
)

var boxed = &props.Cell{BorderType: border.Full, BorderColor: colorBlack, BorderThickness: 0.2}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate dibuja el documento y devuelve los bytes del PDF.
func (g *MarotoPDFGenerator) Generate(_ context.Context, doc invoicedoc.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title+" "+doc.InvoiceNo, true).
		WithAuthor(doc.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(doc))
	m.AddRows(headerRows(doc)...)
	m.AddRows(line.NewRow(2))

	m.AddRows(tableHeaderRow(doc.Columns))
	for _, r := range doc.Rows {
		m.AddRows(itemRow(doc.Columns, r))
	}
	m.AddRows(totalRows(doc)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(amountWordsRow(doc))
	m.AddRows(footerRow(doc))
	m.AddRows(row.New(8).Add(col.New(gridSize).Add(
		text.New(doc.Footer, props.Text{Size: 7, Align: align.Center, Top: 3, Color: colorGray}),
	)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(doc invoicedoc.Document) core.Row {
	return row.New(9).Add(
		col.New(gridSize).Add(text.New(doc.Title, props.Text{
			Style: fontstyle.Bold, Size: 13, Align: align.Center, Top: 1.5,
		})).WithStyle(boxed),
	)
}

// headerRows: emisor (60%) y metadatos (40%) lado a lado; debajo el comprador.
func headerRows(doc invoicedoc.Document) []core.Row {
	s := doc.Seller
	sellerLines := append([]string{}, s.AddressLines...)
	sellerLines = append(sellerLines, s.GSTIN, s.StateLine, s.Contact, s.Email, s.Website)

	metaCol := col.New(40).WithStyle(boxed)
	top := 1.0
	for _, mr := range doc.MetaRows {
		metaCol.Add(
			text.New(mr.LeftLabel, props.Text{Size: 6.5, Top: top, Left: 1, Color: colorGray}),
			text.New(mr.LeftValue, props.Text{Size: 7, Top: top + 3, Left: 1, Style: fontstyle.Bold}),
			text.New(mr.RightLabel, props.Text{Size: 6.5, Top: top, Left: 41, Color: colorGray}),
			text.New(mr.RightValue, props.Text{Size: 7, Top: top + 3, Left: 41, Style: fontstyle.Bold}),
		)
		top += 7
	}

	sellerCol := col.New(60).WithStyle(boxed)
	sellerCol.Add(text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1, Left: 1}))
	addLines(sellerCol, sellerLines, 6, 3.6)

	b := doc.Buyer
	buyerLines := append([]string{}, b.AddressLines...)
	buyerLines = append(buyerLines, b.GSTIN, b.PAN, b.StateLine, b.PlaceOfSupply, b.Contact, b.Email)

	buyerCol := col.New(gridSize).WithStyle(boxed)
	buyerCol.Add(
		text.New("Buyer (Bill to)", props.Text{Size: 6.5, Top: 1, Left: 1, Color: colorGray}),
		text.New(b.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 1}),
	)
	addLines(buyerCol, buyerLines, 8.5, 3.6)

	return []core.Row{
		row.New(maxf(top+2, 8+3.6*float64(len(sellerLines)))).Add(sellerCol, metaCol),
		row.New(11 + 3.6*float64(len(buyerLines))).Add(buyerCol),
	}
}

func addLines(c core.Col, lines []string, top, step float64) {
	for _, l := range lines {
		c.Add(text.New(l, props.Text{Size: 7.5, Top: top, Left: 1}))
		top += step
	}
}

func tableHeaderRow(cols []invoicedoc.Column) core.Row {
	r := row.New(9)
	for _, c := range cols {
		r.Add(col.New(c.WidthPct).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Left: 0.5, Right: 0.5,
		})).WithStyle(&props.Cell{
			BackgroundColor: colorHeader, BorderType: border.Full,
			BorderColor: colorBlack, BorderThickness: 0.2,
		}))
	}
	return r
}

func itemRow(cols []invoicedoc.Column, r invoicedoc.Row) core.Row {
	height := 7.0
	desc := col.New(cols[1].WidthPct).WithStyle(boxed)
	desc.Add(text.New(r.Description, props.Text{Size: 8, Top: 1.5, Left: 1}))
	if r.DescriptionLine2 != "" {
		height = 10
		desc.Add(text.New(r.DescriptionLine2, props.Text{Size: 7, Top: 5.5, Left: 1, Color: colorGray}))
	}
	cell := func(i int, v string, a align.Type) core.Col {
		return col.New(cols[i].WidthPct).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		})).WithStyle(boxed)
	}
	return row.New(height).Add(
		cell(0, r.SlNo, align.Center),
		desc,
		cell(2, r.Quantity, align.Center),
		cell(3, r.Boxes, align.Center),
		cell(4, r.ItemsPerBox, align.Center),
		cell(5, r.Rate, align.Right),
		cell(6, r.Amount, align.Right),
	)
}

// totalRows: fila Total (sumas + subtotal), Round Off, impuesto opcional y Grand Total.
func totalRows(doc invoicedoc.Document) []core.Row {
	cols := doc.Columns
	bold := func(i int, v string, a align.Type) core.Col {
		return col.New(cols[i].WidthPct).Add(text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		})).WithStyle(boxed)
	}
	labelWidth := gridSize - cols[6].WidthPct
	labeled := func(label, value string, size float64, style fontstyle.Type) core.Row {
		return row.New(7).Add(
			col.New(labelWidth).Add(text.New(label, props.Text{
				Style: style, Size: size, Align: align.Right, Top: 1.5, Right: 2,
			})).WithStyle(boxed),
			col.New(cols[6].WidthPct).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Top: 1.5, Right: 1,
			})).WithStyle(boxed),
		)
	}

	rows := []core.Row{
		row.New(7).Add(
			bold(0, invoicedoc.Blank, align.Center),
			bold(1, "Total", align.Right),
			bold(2, doc.TotalQuantity, align.Center),
			bold(3, doc.TotalBoxes, align.Center),
			bold(4, invoicedoc.Blank, align.Center),
			bold(5, "Subtotal", align.Right),
			bold(6, doc.Totals.SubtotalText, align.Right),
		),
		labeled("Round Off", doc.Totals.RoundOffText, 8, fontstyle.Normal),
	}
	if doc.ShowTax {
		rows = append(rows, labeled("GST", doc.Totals.TaxText, 8, fontstyle.Normal))
	}
	rows = append(rows, labeled("Grand Total", doc.Totals.GrandTotalText, 10, fontstyle.Bold))
	return rows
}

func amountWordsRow(doc invoicedoc.Document) core.Row {
	left := col.New(60).WithStyle(boxed).Add(
		text.New(invoicedoc.WordsLabel, props.Text{Size: 6.5, Top: 1, Left: 1, Color: colorGray}),
		text.New(doc.AmountInWords, props.Text{Style: fontstyle.Bold, Size: 8.5, Top: 5, Left: 1}),
		text.New(invoicedoc.EOE, props.Text{Size: 6.5, Top: 11, Left: 1, Color: colorGray}),
	)
	right := col.New(40).WithStyle(boxed)
	top := 2.0
	if doc.ShowPreviousBalance {
		right.Add(
			text.New("Previous Balance:", props.Text{Size: 8, Top: top, Left: 1}),
			text.New(doc.Totals.PreviousBalanceText, props.Text{Size: 8, Top: top, Align: align.Right, Right: 1}),
		)
		top += 5
	}
	right.Add(
		text.New("Current Balance:", props.Text{Style: fontstyle.Bold, Size: 8, Top: top, Left: 1}),
		text.New(doc.Totals.CurrentBalanceText, props.Text{Style: fontstyle.Bold, Size: 8, Top: top, Align: align.Right, Right: 1}),
	)
	return row.New(16).Add(left, right)
}

func footerRow(doc invoicedoc.Document) core.Row {
	decl := col.New(50).WithStyle(boxed).Add(
		text.New("Declaration", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1}),
		text.New(doc.Declaration, props.Text{Size: 7.5, Top: 5, Left: 1, Right: 1}),
	)

	bank := col.New(50).WithStyle(boxed)
	bank.Add(text.New("Company's Bank Details", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1}))
	top := 5.0
	for _, lv := range doc.BankRows {
		bank.Add(text.New(lv.Label+lv.Value, props.Text{Size: 7.5, Top: top, Left: 1}))
		top += 3.8
	}
	bank.Add(
		text.New(doc.SignatureFor, props.Text{Style: fontstyle.Bold, Size: 8, Top: top + 2, Align: align.Right, Right: 2}),
		text.New(invoicedoc.Signatory, props.Text{Size: 7.5, Top: top + 12, Align: align.Right, Right: 2}),
	)
	return row.New(top + 17).Add(decl, bank)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
