package invoicedoc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/jhoicas/facturacion-india-api/internal/domain/numbering"
	"github.com/jhoicas/facturacion-india-api/pkg/inr"
	"github.com/shopspring/decimal"
)

// Valores por defecto cuando faltan datos.
const (
	FallbackSellerName   = "Seller"
	FallbackBuyerName    = "Buyer"
	FallbackItemName     = "Item"
	DefaultModeOfPayment = "Cash/Bank"
	DateLayout           = "02 Jan 2006, 03:04 PM"
)

// IST zona horaria de India (sin horario de verano).
var IST = time.FixedZone("IST", 5*3600+30*60)

// Columns columnas de la tabla con su ancho en porcentaje (suman 100).
var Columns = []Column{
	{Header: "Sl No.", WidthPct: 6},
	{Header: "Description of Goods", WidthPct: 33},
	{Header: "Quantity", WidthPct: 10},
	{Header: "No of boxes", WidthPct: 10},
	{Header: "No of item (per box)", WidthPct: 10},
	{Header: "Rate (per item)", WidthPct: 12},
	{Header: "Amount", WidthPct: 19},
}

// Normalize arma el documento a partir de una entrada posiblemente incompleta.
// Nunca falla: lo que falta se reemplaza por un valor por defecto o por Blank.
func Normalize(in Input) Document {
	loc := in.Location
	if loc == nil {
		loc = IST
	}

	seller := sellerBlock(in.Seller)
	doc := Document{
		Title:       Title,
		Seller:      seller,
		Buyer:       buyerBlock(in.Buyer),
		InvoiceNo:   orBlank(in.Meta.InvoiceNo),
		InvoiceDate: formatDate(in.Meta.InvoiceDate, loc),
		Columns:     append([]Column(nil), Columns...),
		Declaration: Declaration,
		BankRows:    bankRows(in.Bank, seller.Name),
		// la firma usa el nombre del emisor ya resuelto
		SignatureFor: "for " + seller.Name,
		Footer:       FooterNote,
		FileName:     "Invoice.pdf",
	}
	if in.Meta.InvoiceNo != "" {
		doc.FileName = numbering.FileName(in.Meta.InvoiceNo)
	}
	doc.MetaRows = metaRows(in.Meta, doc.InvoiceNo, doc.InvoiceDate)

	lineTotals := make([]decimal.Decimal, 0, len(in.Items))
	totalQty := decimal.Zero
	totalBoxes := 0
	for i, it := range in.Items {
		r, lt, qty := itemRow(i+1, it)
		doc.Rows = append(doc.Rows, r)
		lineTotals = append(lineTotals, lt)
		totalQty = totalQty.Add(qty)
		if it.Boxes > 0 && it.ItemsPerBox > 0 {
			totalBoxes += it.Boxes
		}
	}
	doc.TotalQuantity = Blank
	if !totalQty.IsZero() {
		doc.TotalQuantity = formatQty(totalQty)
	}
	doc.TotalBoxes = Blank
	if totalBoxes > 0 {
		doc.TotalBoxes = strconv.Itoa(totalBoxes)
	}

	t := money.TotalsFromLineTotals(lineTotals, money.ClampZero(in.Tax))
	prev := money.ClampZero(in.PreviousBalance)
	doc.Totals = Totals{
		Subtotal:        t.Subtotal,
		RoundOff:        t.RoundOff,
		Tax:             t.Tax,
		GrandTotal:      t.GrandTotal,
		PreviousBalance: prev,
		CurrentBalance:  money.CurrentBalance(prev, t.GrandTotal),
	}
	doc.Totals.SubtotalText = inr.FormatRupees(money.Round2(t.Subtotal))
	doc.Totals.RoundOffText = inr.FormatRupees(money.Round2(t.RoundOff))
	doc.Totals.TaxText = inr.FormatRupees(t.Tax)
	doc.Totals.GrandTotalText = inr.FormatRupees(t.GrandTotal)
	doc.Totals.PreviousBalanceText = inr.FormatRupees(prev) + " Dr"
	doc.Totals.CurrentBalanceText = inr.FormatRupees(doc.Totals.CurrentBalance) + " Dr"
	doc.ShowTax = !t.Tax.IsZero()
	doc.ShowPreviousBalance = !prev.IsZero()
	doc.AmountInWords = inr.AmountInWords(t.GrandTotal)

	return doc
}

func itemRow(slNo int, it Item) (Row, decimal.Decimal, decimal.Decimal) {
	qty := money.ClampZero(it.Quantity)
	rate := money.Round2(money.ClampZero(it.Rate))
	var lt decimal.Decimal
	if it.LineTotal != nil {
		lt = money.ClampZero(*it.LineTotal)
	} else {
		lt = money.LineTotal(rate, qty, it.Discount)
	}

	r := Row{
		SlNo:        strconv.Itoa(slNo),
		Description: strings.TrimSpace(it.Description),
		Quantity:    Blank,
		Boxes:       Blank,
		ItemsPerBox: Blank,
		Rate:        rate.StringFixed(2),
		Amount:      inr.FormatRupees(money.Round2(lt)),
	}
	if r.Description == "" {
		r.Description = FallbackItemName
	}
	if !qty.IsZero() {
		r.Quantity = strings.TrimSpace(formatQty(qty) + " " + strings.TrimSpace(it.Unit))
	}
	if it.Boxes > 0 && it.ItemsPerBox > 0 {
		r.DescriptionLine2 = fmt.Sprintf("%dNOS X %d BOX", it.ItemsPerBox, it.Boxes)
		r.Boxes = strconv.Itoa(it.Boxes)
		r.ItemsPerBox = strconv.Itoa(it.ItemsPerBox)
	}
	return r, lt, qty
}

func sellerBlock(p *Party) SellerBlock {
	if p == nil {
		p = &Party{}
	}
	b := SellerBlock{
		Name:         nonEmpty(p.Name, FallbackSellerName),
		AddressLines: addressLines(p.AddressLines),
		GSTIN:        labeled("GSTIN/UIN: ", p.GSTIN),
		StateLine:    stateLine(p.State, p.StateCode),
		Contact:      labeled("Contact : ", joinNonEmpty(p.Contacts, ", ")),
		Email:        labeled("E-Mail : ", p.Email),
		Website:      orBlank(strings.TrimSpace(p.Website)),
	}
	return b
}

func buyerBlock(p *Party) BuyerBlock {
	if p == nil {
		p = &Party{}
	}
	place := p.PlaceOfSupply
	if strings.TrimSpace(place) == "" {
		place = p.State
	}
	return BuyerBlock{
		Name:          nonEmpty(p.Name, FallbackBuyerName),
		AddressLines:  addressLines(p.AddressLines),
		GSTIN:         labeled("GSTIN/UIN : ", p.GSTIN),
		PAN:           labeled("PAN/IT No : ", p.PAN),
		StateLine:     stateLine(p.State, p.StateCode),
		PlaceOfSupply: labeled("Place of Supply : ", place),
		Contact:       labeled("Contact : ", joinNonEmpty(p.Contacts, ", ")),
		Email:         labeled("E-Mail : ", p.Email),
	}
}

func metaRows(m Meta, invoiceNo, invoiceDate string) []MetaRow {
	mode := nonEmpty(m.ModeOfPayment, DefaultModeOfPayment)
	rows := []MetaRow{
		{"Invoice No.", invoiceNo, "Dated", invoiceDate},
		{"Delivery Note", m.DeliveryNote, "Mode/Terms of Payment", mode},
		{"Reference No. & Date", m.ReferenceNo, "Other References", m.OtherReferences},
		{"Buyer's Order No.", m.BuyerOrderNo, "Dated", m.BuyerOrderDate},
		{"Dispatch Doc No.", m.DispatchDocNo, "Delivery Note Date", m.DeliveryNoteDate},
		{"Dispatched through", m.DispatchedThrough, "Destination", m.Destination},
		{"Bill of Lading/LR-RR No.", m.BillOfLadingNo, "Motor Vehicle No.", m.MotorVehicleNo},
		{"Terms of Delivery", m.TermsOfDelivery, "", ""},
	}
	for i := range rows {
		rows[i].LeftLabel = orBlank(rows[i].LeftLabel)
		rows[i].LeftValue = orBlank(strings.TrimSpace(rows[i].LeftValue))
		rows[i].RightLabel = orBlank(rows[i].RightLabel)
		rows[i].RightValue = orBlank(strings.TrimSpace(rows[i].RightValue))
	}
	return rows
}

func bankRows(b *Bank, sellerName string) []LabelValue {
	if b == nil {
		b = &Bank{}
	}
	rows := []LabelValue{
		{"A/c Holder's Name: ", nonEmpty(b.AccountHolder, sellerName)},
		{"Bank Name: ", orBlank(strings.TrimSpace(b.BankName))},
		{"A/c No.: ", orBlank(strings.TrimSpace(b.AccountNo))},
		{"Branch & IFSC: ", orBlank(joinNonEmpty([]string{b.Branch, b.IFSC}, ", "))},
	}
	if s := strings.TrimSpace(b.SwiftCode); s != "" {
		rows = append(rows, LabelValue{"SWIFT Code: ", s})
	}
	return rows
}

func addressLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		for _, part := range strings.Split(l, "\n") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return []string{Blank}
	}
	return out
}

func stateLine(state, code string) string {
	state, code = strings.TrimSpace(state), strings.TrimSpace(code)
	switch {
	case state == "" && code == "":
		return Blank
	case code == "":
		return "State Name : " + state
	default:
		return fmt.Sprintf("State Name : %s, Code : %s", state, code)
	}
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return Blank
	}
	return t.In(loc).Format(DateLayout)
}

// formatQty muestra enteros sin decimales y fracciones con hasta 3.
func formatQty(q decimal.Decimal) string {
	if q.Equal(q.Truncate(0)) {
		return q.Truncate(0).String()
	}
	return q.Round(3).String()
}

func labeled(label, value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return label + v
	}
	return Blank
}

func joinNonEmpty(parts []string, sep string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func nonEmpty(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

func orBlank(s string) string {
	if s == "" {
		return Blank
	}
	return s
}
