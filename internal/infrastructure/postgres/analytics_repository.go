package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

var _ repository.SalesAnalyticsRepository = (*SalesAnalyticsRepo)(nil)

// SalesAnalyticsRepo consultas de solo lectura para el reporte de ventas.
// Solo cuentan facturas de empresas que no están en la papelera.
type SalesAnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewSalesAnalyticsRepository construye el adaptador de analítica.
func NewSalesAnalyticsRepository(pool *pgxpool.Pool) *SalesAnalyticsRepo {
	return &SalesAnalyticsRepo{pool: pool}
}

// MonthlyRevenue agrupa por mes calendario en la zona tz desde `since`.
func (r *SalesAnalyticsRepo) MonthlyRevenue(
	ctx context.Context,
	userID, tz string,
	since time.Time,
) ([]repository.MonthlyRevenueResult, error) {
	const query = `
	SELECT
	    date_trunc('month', i.created_at AT TIME ZONE $2)::date  AS month,
	    COALESCE(SUM(i.total_amount), 0)                         AS revenue,
	    COUNT(*)                                                 AS invoice_count
	FROM invoices i
	JOIN companies c ON c.id = i.company_id
	WHERE i.user_id = $1
	  AND c.is_deleted = FALSE
	  AND i.created_at >= $3
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, userID, tz, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	var results []repository.MonthlyRevenueResult
	for rows.Next() {
		var row repository.MonthlyRevenueResult
		var month time.Time
		if err := rows.Scan(&month, &row.Revenue, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("analytics.MonthlyRevenue scan: %w", err)
		}
		row.Month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopCompanies las `limit` empresas con mayor facturación.
func (r *SalesAnalyticsRepo) TopCompanies(
	ctx context.Context,
	userID string,
	limit int,
) ([]repository.CompanyRevenueResult, error) {
	const query = `
	SELECT
	    c.id::text,
	    c.name,
	    SUM(i.total_amount)  AS revenue,
	    COUNT(i.id)          AS invoice_count
	FROM invoices i
	JOIN companies c ON c.id = i.company_id
	WHERE i.user_id = $1
	  AND c.is_deleted = FALSE
	GROUP BY c.id, c.name
	ORDER BY revenue DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopCompanies: %w", err)
	}
	defer rows.Close()

	var results []repository.CompanyRevenueResult
	for rows.Next() {
		var row repository.CompanyRevenueResult
		if err := rows.Scan(&row.CompanyID, &row.CompanyName, &row.Revenue, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("analytics.TopCompanies scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopItems ranking de artículos por el nombre guardado en la línea.
func (r *SalesAnalyticsRepo) TopItems(
	ctx context.Context,
	userID string,
	order repository.ItemSalesOrder,
	limit int,
) ([]repository.ItemSalesResult, error) {
	orderBy := "revenue DESC"
	if order == repository.ItemSalesByQuantity {
		orderBy = "quantity DESC"
	}
	query := `
	SELECT
	    li.item_name,
	    SUM(li.quantity)    AS quantity,
	    SUM(li.line_total)  AS revenue
	FROM invoice_line_items li
	JOIN invoices  i ON i.id = li.invoice_id
	JOIN companies c ON c.id = i.company_id
	WHERE i.user_id = $1
	  AND c.is_deleted = FALSE
	GROUP BY li.item_name
	ORDER BY ` + orderBy + `
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopItems: %w", err)
	}
	defer rows.Close()

	var results []repository.ItemSalesResult
	for rows.Next() {
		var row repository.ItemSalesResult
		if err := rows.Scan(&row.ItemName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.TopItems scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RevenueByWeekday agrupa por día de la semana (0 = domingo) en la zona tz.
func (r *SalesAnalyticsRepo) RevenueByWeekday(
	ctx context.Context,
	userID, tz string,
) ([]repository.WeekdayRevenueResult, error) {
	const query = `
	SELECT
	    EXTRACT(DOW FROM i.created_at AT TIME ZONE $2)::int  AS weekday,
	    SUM(i.total_amount)                                  AS revenue,
	    COUNT(*)                                             AS invoice_count
	FROM invoices i
	JOIN companies c ON c.id = i.company_id
	WHERE i.user_id = $1
	  AND c.is_deleted = FALSE
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, userID, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.RevenueByWeekday: %w", err)
	}
	defer rows.Close()

	var results []repository.WeekdayRevenueResult
	for rows.Next() {
		var row repository.WeekdayRevenueResult
		if err := rows.Scan(&row.Weekday, &row.Revenue, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("analytics.RevenueByWeekday scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Totals totales generales. Usa COALESCE para devolver cero sin ventas.
func (r *SalesAnalyticsRepo) Totals(ctx context.Context, userID string) (repository.SalesTotalsResult, error) {
	const query = `
	WITH per_company AS (
	    SELECT i.company_id, COUNT(*) AS n, SUM(i.total_amount) AS revenue
	    FROM invoices i
	    JOIN companies c ON c.id = i.company_id
	    WHERE i.user_id = $1 AND c.is_deleted = FALSE
	    GROUP BY i.company_id
	)
	SELECT
	    COALESCE(SUM(n), 0)::int                        AS invoice_count,
	    COALESCE(SUM(revenue), 0)                       AS revenue,
	    (SELECT COALESCE(SUM(pending_amount), 0)
	       FROM companies
	      WHERE user_id = $1 AND is_deleted = FALSE)    AS outstanding,
	    COUNT(*)::int                                   AS company_count,
	    COUNT(*) FILTER (WHERE n > 1)::int              AS repeat_companies
	FROM per_company`

	var t repository.SalesTotalsResult
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&t.InvoiceCount, &t.Revenue, &t.Outstanding, &t.CompanyCount, &t.RepeatCompanies,
	)
	if err != nil {
		return repository.SalesTotalsResult{}, fmt.Errorf("analytics.Totals: %w", err)
	}
	return t, nil
}
