// Package invoicedoc prepara el documento de factura que se imprime en A4.
//
// Normalize recibe datos que pueden venir incompletos (formularios, filas de la
// base de datos con NULL) y devuelve un Document totalmente poblado: textos ya
// formateados, valores por defecto resueltos, totales y monto en letras. El
// renderizador (infrastructure/pdf) solo dibuja lo que recibe y no decide nada.
package invoicedoc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Blank celda vacía: se imprime un espacio duro para conservar el ancho de la tabla.
const Blank = "\u00a0"

// Textos fijos del documento.
const (
	Title       = "Order Estimates"
	Declaration = "We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct."
	FooterNote  = "This is a Computer Generated Invoice"
	Signatory   = "Authorised Signatory"
	EOE         = "E. & O.E"
	WordsLabel  = "Amount Chargeable (in words)"
)

// ── Entrada (puede venir incompleta) ─────────────────────────────────────────

// Party emisor o comprador.
type Party struct {
	Name          string
	AddressLines  []string
	GSTIN         string
	PAN           string
	State         string
	StateCode     string
	PlaceOfSupply string
	Contacts      []string
	Email         string
	Website       string
}

// Meta campos del bloque derecho de la cabecera.
type Meta struct {
	InvoiceNo         string
	InvoiceDate       time.Time
	DeliveryNote      string
	ModeOfPayment     string
	ReferenceNo       string
	OtherReferences   string
	BuyerOrderNo      string
	BuyerOrderDate    string
	DispatchDocNo     string
	DeliveryNoteDate  string
	DispatchedThrough string
	Destination       string
	BillOfLadingNo    string
	MotorVehicleNo    string
	TermsOfDelivery   string
}

// Bank datos bancarios del emisor.
type Bank struct {
	AccountHolder string
	BankName      string
	AccountNo     string
	Branch        string
	IFSC          string
	SwiftCode     string
}

// Item línea de la factura. LineTotal nil = se calcula con tarifa, cantidad y descuento.
type Item struct {
	Description string
	HSN         string
	Unit        string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Discount    decimal.Decimal
	LineTotal   *decimal.Decimal
	Boxes       int
	ItemsPerBox int
}

// Input todo lo necesario para armar el documento. Cualquier campo puede faltar.
type Input struct {
	Seller          *Party
	Buyer           *Party
	Meta            Meta
	Bank            *Bank
	Items           []Item
	Tax             decimal.Decimal
	PreviousBalance decimal.Decimal
	Location        *time.Location
}

// ── Documento normalizado ────────────────────────────────────────────────────

// SellerBlock bloque izquierdo de la cabecera.
type SellerBlock struct {
	Name         string
	AddressLines []string
	GSTIN        string
	StateLine    string
	Contact      string
	Email        string
	Website      string
}

// BuyerBlock bloque "Buyer (Bill to)".
type BuyerBlock struct {
	Name          string
	AddressLines  []string
	GSTIN         string
	PAN           string
	StateLine     string
	PlaceOfSupply string
	Contact       string
	Email         string
}

// MetaRow una fila de dos celdas (etiqueta + valor a cada lado).
type MetaRow struct {
	LeftLabel  string
	LeftValue  string
	RightLabel string
	RightValue string
}

// Column encabezado y ancho porcentual de una columna de la tabla.
type Column struct {
	Header   string
	WidthPct int
}

// Row fila de la tabla de artículos, ya formateada.
type Row struct {
	SlNo             string
	Description      string
	DescriptionLine2 string // "{ipb}NOS X {boxes} BOX" o vacío
	Quantity         string
	Boxes            string
	ItemsPerBox      string
	Rate             string
	Amount           string
}

// LabelValue par etiqueta/valor (datos bancarios).
type LabelValue struct {
	Label string
	Value string
}

// Totals montos ya calculados, en número y en texto.
type Totals struct {
	Subtotal        decimal.Decimal
	RoundOff        decimal.Decimal
	Tax             decimal.Decimal
	GrandTotal      decimal.Decimal
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal

	SubtotalText        string
	RoundOffText        string
	TaxText             string
	GrandTotalText      string
	PreviousBalanceText string
	CurrentBalanceText  string
}

// Document factura lista para renderizar. Ningún campo de texto queda vacío
// salvo DescriptionLine2 (opcional por diseño de la tabla).
type Document struct {
	Title               string
	FileName            string
	Seller              SellerBlock
	Buyer               BuyerBlock
	InvoiceNo           string
	InvoiceDate         string
	MetaRows            []MetaRow
	Columns             []Column
	Rows                []Row
	TotalQuantity       string
	TotalBoxes          string
	Totals              Totals
	ShowTax             bool
	ShowPreviousBalance bool
	AmountInWords       string
	Declaration         string
	BankRows            []LabelValue
	SignatureFor        string
	Footer              string
}
