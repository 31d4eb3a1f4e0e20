// Package analytics contiene los casos de uso de reportes de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	monthsWindow  = 12
	topCompaniesN = 5
	topItemsN     = 10
)

var hundred = decimal.NewFromInt(100)

// SalesReportUseCase arma el reporte de ventas del usuario.
//
// Fuente de datos: SalesAnalyticsRepository (consultas read-only).
type SalesReportUseCase struct {
	repo repository.SalesAnalyticsRepository
	loc  *time.Location
	log  *logger.Logger
	now  func() time.Time
}

// NewSalesReportUseCase construye el caso de uso. loc es la zona con la que
// se agrupan meses y días (IST en producción).
func NewSalesReportUseCase(repo repository.SalesAnalyticsRepository, loc *time.Location, log *logger.Logger) *SalesReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SalesReportUseCase{repo: repo, loc: loc, log: log.WithComponent("analytics"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SalesReportUseCase) WithClock(now func() time.Time) *SalesReportUseCase {
	uc.now = now
	return uc
}

// GetSalesReport ejecuta las seis consultas en paralelo y deriva los indicadores.
func (uc *SalesReportUseCase) GetSalesReport(ctx context.Context, userID string) (*dto.SalesReportDTO, error) {
	now := uc.now().In(uc.loc)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	since := thisMonth.AddDate(0, -(monthsWindow - 1), 0)
	tz := uc.loc.String()

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type monthlyResult struct {
		rows []repository.MonthlyRevenueResult
		err  error
	}
	type companiesResult struct {
		rows []repository.CompanyRevenueResult
		err  error
	}
	type itemsResult struct {
		rows []repository.ItemSalesResult
		err  error
	}
	type weekdayResult struct {
		rows []repository.WeekdayRevenueResult
		err  error
	}
	type totalsResult struct {
		totals repository.SalesTotalsResult
		err    error
	}

	monthlyCh := make(chan monthlyResult, 1)
	companiesCh := make(chan companiesResult, 1)
	byRevenueCh := make(chan itemsResult, 1)
	byQuantityCh := make(chan itemsResult, 1)
	weekdayCh := make(chan weekdayResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		rows, err := uc.repo.MonthlyRevenue(ctx, userID, tz, since)
		monthlyCh <- monthlyResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.TopCompanies(ctx, userID, topCompaniesN)
		companiesCh <- companiesResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.TopItems(ctx, userID, repository.ItemSalesByRevenue, topItemsN)
		byRevenueCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.TopItems(ctx, userID, repository.ItemSalesByQuantity, topItemsN)
		byQuantityCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.RevenueByWeekday(ctx, userID, tz)
		weekdayCh <- weekdayResult{rows, err}
	}()
	go func() {
		t, err := uc.repo.Totals(ctx, userID)
		totalsCh <- totalsResult{t, err}
	}()

	monthly := <-monthlyCh
	companies := <-companiesCh
	byRevenue := <-byRevenueCh
	byQuantity := <-byQuantityCh
	weekday := <-weekdayCh
	totals := <-totalsCh

	for _, e := range []struct {
		what string
		err  error
	}{
		{"ventas mensuales", monthly.err},
		{"top empresas", companies.err},
		{"top artículos por ingreso", byRevenue.err},
		{"top artículos por cantidad", byQuantity.err},
		{"ventas por día", weekday.err},
		{"totales", totals.err},
	} {
		if e.err != nil {
			uc.log.Error().Err(e.err).Str("user_id", userID).Msg("falló el reporte de ventas")
			return nil, fmt.Errorf("reporte de ventas: %s: %w", e.what, e.err)
		}
	}

	// ── Serie mensual con meses vacíos en cero ────────────────────────────────
	byMonth := make(map[string]repository.MonthlyRevenueResult, len(monthly.rows))
	for _, r := range monthly.rows {
		byMonth[r.Month.Format("2006-01")] = r
	}
	series := make([]dto.MonthlySalesDTO, 0, monthsWindow)
	var thisRev, lastRev decimal.Decimal
	lastMonth := thisMonth.AddDate(0, -1, 0)
	for i := 0; i < monthsWindow; i++ {
		m := since.AddDate(0, i, 0)
		r := byMonth[m.Format("2006-01")]
		rev := r.Revenue.Round(2)
		series = append(series, dto.MonthlySalesDTO{Month: m.Format("Jan 2006"), Revenue: rev, InvoiceCount: r.InvoiceCount})
		switch {
		case m.Equal(thisMonth):
			thisRev = rev
		case m.Equal(lastMonth):
			lastRev = rev
		}
	}

	t := totals.totals
	report := &dto.SalesReportDTO{
		TotalRevenue:       t.Revenue.Round(2),
		TotalInvoices:      t.InvoiceCount,
		TotalOutstanding:   t.Outstanding.Round(2),
		AverageOrderValue:  ratio(t.Revenue, decimal.NewFromInt(int64(t.InvoiceCount)), false),
		CollectionRate:     ratio(t.Revenue.Sub(t.Outstanding), t.Revenue, true),
		RepeatCustomerRate: ratio(decimal.NewFromInt(int64(t.RepeatCompanies)), decimal.NewFromInt(int64(t.CompanyCount)), true),
		ThisMonthRevenue:   thisRev,
		LastMonthRevenue:   lastRev,
		MonthOverMonth:     GrowthPercent(thisRev, lastRev),
		Monthly:            series,
		TopCompanies:       make([]dto.CompanySalesDTO, 0, len(companies.rows)),
		TopItemsByRevenue:  toItemSales(byRevenue.rows),
		TopItemsByQuantity: toItemSales(byQuantity.rows),
		ByWeekday:          weekdaySeries(weekday.rows),
	}
	for _, c := range companies.rows {
		report.TopCompanies = append(report.TopCompanies, dto.CompanySalesDTO{
			CompanyID:    c.CompanyID,
			CompanyName:  c.CompanyName,
			Revenue:      c.Revenue.Round(2),
			InvoiceCount: c.InvoiceCount,
		})
	}
	return report, nil
}

// GrowthPercent variación porcentual mes a mes. Si el mes anterior fue cero,
// vale 100 cuando hubo ventas y 0 cuando no.
func GrowthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// ratio num/den redondeado a 2 decimales; cero si den es cero.
func ratio(num, den decimal.Decimal, percent bool) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	r := num.Div(den)
	if percent {
		r = r.Mul(hundred)
	}
	return r.Round(2)
}

func toItemSales(rows []repository.ItemSalesResult) []dto.ItemSalesDTO {
	out := make([]dto.ItemSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ItemSalesDTO{ItemName: r.ItemName, Quantity: r.Quantity, Revenue: r.Revenue.Round(2)})
	}
	return out
}

// weekdaySeries devuelve siempre los 7 días, de domingo a sábado.
func weekdaySeries(rows []repository.WeekdayRevenueResult) []dto.WeekdaySalesDTO {
	out := make([]dto.WeekdaySalesDTO, 7)
	for d := range out {
		out[d] = dto.WeekdaySalesDTO{Day: time.Weekday(d).String(), Revenue: decimal.Zero}
	}
	for _, r := range rows {
		if r.Weekday < 0 || r.Weekday > 6 {
			continue
		}
		out[r.Weekday].Revenue = r.Revenue.Round(2)
		out[r.Weekday].InvoiceCount = r.InvoiceCount
	}
	return out
}
