package dto

import "github.com/shopspring/decimal"

// SalesReportDTO respuesta de GET /api/analytics/sales.
type SalesReportDTO struct {
	TotalRevenue       decimal.Decimal   `json:"total_revenue"`
	TotalInvoices      int               `json:"total_invoices"`
	TotalOutstanding   decimal.Decimal   `json:"total_outstanding"`
	AverageOrderValue  decimal.Decimal   `json:"average_order_value"`
	CollectionRate     decimal.Decimal   `json:"collection_rate"`      // (revenue - outstanding) / revenue * 100
	RepeatCustomerRate decimal.Decimal   `json:"repeat_customer_rate"` // % de empresas con más de una factura
	ThisMonthRevenue   decimal.Decimal   `json:"this_month_revenue"`
	LastMonthRevenue   decimal.Decimal   `json:"last_month_revenue"`
	MonthOverMonth     decimal.Decimal   `json:"month_over_month_growth"`
	Monthly            []MonthlySalesDTO `json:"monthly"`
	TopCompanies       []CompanySalesDTO `json:"top_companies"`
	TopItemsByRevenue  []ItemSalesDTO    `json:"top_items_by_revenue"`
	TopItemsByQuantity []ItemSalesDTO    `json:"top_items_by_quantity"`
	ByWeekday          []WeekdaySalesDTO `json:"by_weekday"`
}

// MonthlySalesDTO ventas de un mes ("Jan 2026").
type MonthlySalesDTO struct {
	Month        string          `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
}

// CompanySalesDTO ventas de una empresa.
type CompanySalesDTO struct {
	CompanyID    string          `json:"company_id"`
	CompanyName  string          `json:"company_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
}

// ItemSalesDTO ventas de un artículo.
type ItemSalesDTO struct {
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// WeekdaySalesDTO ventas por día de la semana.
type WeekdaySalesDTO struct {
	Day          string          `json:"day"`
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
}
