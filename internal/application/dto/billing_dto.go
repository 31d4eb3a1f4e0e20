package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineRequest línea del carrito. Si ItemID viene, es la clave de la línea;
// si no, Key identifica un artículo ad hoc. Con UseBoxes la cantidad es Boxes × ItemsPerBox.
type InvoiceLineRequest struct {
	ItemID      *string         `json:"item_id,omitempty"`
	Key         string          `json:"key,omitempty"`
	Name        string          `json:"name"`
	HSN         string          `json:"hsn"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	UseBoxes    bool            `json:"use_boxes"`
	Boxes       decimal.Decimal `json:"boxes"`
	ItemsPerBox decimal.Decimal `json:"items_per_box"`
	Quantity    decimal.Decimal `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"` // porcentaje 0..100
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CompanyID string               `json:"company_id"`
	Items     []InvoiceLineRequest `json:"items"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. CompanyID vacío = sin cambio.
type UpdateInvoiceRequest struct {
	CompanyID string               `json:"company_id,omitempty"`
	Items     []InvoiceLineRequest `json:"items"`
}

// InvoiceResponse factura con sus líneas.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	CompanyID      string                `json:"company_id"`
	CompanyName    string                `json:"company_name,omitempty"`
	Number         string                `json:"invoice_number"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	AmountReceived decimal.Decimal       `json:"amount_received"`
	BalanceDue     decimal.Decimal       `json:"balance_due"`
	Status         string                `json:"status"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Items          []InvoiceLineResponse `json:"items,omitempty"`
}

// InvoiceLineResponse línea persistida.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ItemID      *string         `json:"item_id,omitempty"`
	Position    int             `json:"position"`
	Name        string          `json:"name"`
	HSN         string          `json:"hsn"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Boxes       int             `json:"boxes,omitempty"`
	ItemsPerBox int             `json:"items_per_box,omitempty"`
}

// CartEntryResponse línea del carrito con su total calculado.
type CartEntryResponse struct {
	Key         string          `json:"key"`
	ItemID      *string         `json:"item_id,omitempty"`
	Name        string          `json:"name"`
	HSN         string          `json:"hsn"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	Boxes       int             `json:"boxes,omitempty"`
	ItemsPerBox int             `json:"items_per_box,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartResponse carrito calculado: vista previa o rehidratación de una factura.
type CartResponse struct {
	InvoiceID  string              `json:"invoice_id,omitempty"`
	Number     string              `json:"invoice_number,omitempty"`
	CompanyID  string              `json:"company_id,omitempty"`
	Entries    []CartEntryResponse `json:"entries"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	RoundOff   decimal.Decimal     `json:"round_off"`
	Tax        decimal.Decimal     `json:"tax"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
