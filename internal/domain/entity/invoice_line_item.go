package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem línea persistida. Los campos Item* son una copia del artículo al
// momento de facturar; InventoryItemID queda nil si el artículo era ad hoc o ya no existe.
type InvoiceLineItem struct {
	ID              string
	InvoiceID       string
	InventoryItemID *string
	Position        int
	ItemName        string
	ItemHSN         string
	ItemUnit        string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Discount        decimal.Decimal // porcentaje
	TaxRate         decimal.Decimal
	LineTotal       decimal.Decimal
	Boxes           int // 0 cuando la línea no usa modo cajas
	ItemsPerBox     int
}
