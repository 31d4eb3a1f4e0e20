package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenueResult ventas agregadas por mes calendario (IST).
type MonthlyRevenueResult struct {
	Month        time.Time // primer día del mes
	Revenue      decimal.Decimal
	InvoiceCount int
}

// CompanyRevenueResult ventas agregadas por empresa.
type CompanyRevenueResult struct {
	CompanyID    string
	CompanyName  string
	Revenue      decimal.Decimal
	InvoiceCount int
}

// ItemSalesResult ventas agregadas por nombre de artículo (snapshot de la línea).
type ItemSalesResult struct {
	ItemName string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

// WeekdayRevenueResult ventas por día de la semana (0 = domingo).
type WeekdayRevenueResult struct {
	Weekday      int
	Revenue      decimal.Decimal
	InvoiceCount int
}

// SalesTotalsResult totales generales del usuario.
type SalesTotalsResult struct {
	InvoiceCount    int
	Revenue         decimal.Decimal
	Outstanding     decimal.Decimal // suma de pending_amount de empresas activas
	CompanyCount    int             // empresas con al menos una factura
	RepeatCompanies int             // empresas con más de una factura
}

// ItemSalesOrder criterio de orden para el ranking de artículos.
type ItemSalesOrder string

const (
	ItemSalesByRevenue  ItemSalesOrder = "revenue"
	ItemSalesByQuantity ItemSalesOrder = "quantity"
)

// SalesAnalyticsRepository consultas de solo lectura para el reporte de ventas.
// tz es el nombre IANA de la zona con la que se agrupan fechas ("Asia/Kolkata").
type SalesAnalyticsRepository interface {
	MonthlyRevenue(ctx context.Context, userID, tz string, since time.Time) ([]MonthlyRevenueResult, error)
	TopCompanies(ctx context.Context, userID string, limit int) ([]CompanyRevenueResult, error)
	TopItems(ctx context.Context, userID string, order ItemSalesOrder, limit int) ([]ItemSalesResult, error)
	RevenueByWeekday(ctx context.Context, userID, tz string) ([]WeekdayRevenueResult, error)
	Totals(ctx context.Context, userID string) (SalesTotalsResult, error)
}
