package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, user_id, company_id, invoice_number, total_amount, tax_amount,
	amount_received, status, due_date, created_at, updated_at`

const lineColumns = `id, invoice_id, inventory_item_id, position, item_name, item_hsn, item_unit,
	quantity, unit_price, discount, tax_rate, line_total, boxes, items_per_box`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera. Un número repetido no aborta la transacción:
// ON CONFLICT no devuelve fila y se informa domain.ErrDuplicate para reintentar.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, invoice_number) DO NOTHING
		RETURNING id`
	var id string
	err := r.q.QueryRow(ctx, query,
		inv.ID, inv.UserID, inv.CompanyID, inv.Number, inv.TotalAmount, inv.TaxAmount,
		inv.AmountReceived, inv.Status, inv.DueDate, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLineItems inserta todas las líneas en un solo batch.
func (r *InvoiceRepo) CreateLineItems(ctx context.Context, items []*entity.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO invoice_line_items (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	batch := &pgx.Batch{}
	for _, li := range items {
		batch.Queue(query,
			li.ID, li.InvoiceID, li.InventoryItemID, li.Position, li.ItemName, nullIfEmpty(li.ItemHSN),
			li.ItemUnit, li.Quantity, li.UnitPrice, li.Discount, li.TaxRate, li.LineTotal,
			li.Boxes, li.ItemsPerBox,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

// Update reescribe empresa, montos y estado. El número no cambia nunca.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET company_id = $3, total_amount = $4, tax_amount = $5, amount_received = $6,
		    status = $7, due_date = $8, updated_at = $9
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		inv.UserID, inv.ID, inv.CompanyID, inv.TotalAmount, inv.TaxAmount, inv.AmountReceived,
		inv.Status, inv.DueDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera de una factura del usuario.
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
}

// GetForUpdate bloquea la fila de la factura dentro de la transacción.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1 AND id = $2 FOR UPDATE`, userID, id)
}

// GetByNumber busca por número exacto.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, userID, number string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1 AND invoice_number = $2`, userID, number)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// SearchByNumber coincidencia parcial sin distinguir mayúsculas.
func (r *InvoiceRepo) SearchByNumber(ctx context.Context, userID, term string, limit int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE user_id = $1 AND invoice_number ILIKE $2
		ORDER BY created_at DESC
		LIMIT $3`, userID, likePattern(term), limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}
	return collectInvoices(rows)
}

// List facturas del usuario (opcionalmente de una empresa), más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE user_id = $1 AND ($2::text = '' OR company_id::text = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, f.UserID, f.CompanyID, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return collectInvoices(rows)
}

func (r *InvoiceRepo) Count(ctx context.Context, f repository.InvoiceFilter) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices
		WHERE user_id = $1 AND ($2::text = '' OR company_id::text = $2)`, f.UserID, f.CompanyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// GetLineItems líneas de una factura en el orden en que se cargaron.
func (r *InvoiceRepo) GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM invoice_line_items
		WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLineItem
	for rows.Next() {
		li, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, li)
	}
	return list, rows.Err()
}

// GetLineItemsByInvoiceIDs una sola consulta para varias facturas.
func (r *InvoiceRepo) GetLineItemsByInvoiceIDs(ctx context.Context, ids []string) (map[string][]*entity.InvoiceLineItem, error) {
	out := make(map[string][]*entity.InvoiceLineItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM invoice_line_items
		WHERE invoice_id::text = ANY($1) ORDER BY invoice_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		li, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		out[li.InvoiceID] = append(out[li.InvoiceID], li)
	}
	return out, rows.Err()
}

// DeleteLineItems borra las líneas (la edición las reemplaza completas).
func (r *InvoiceRepo) DeleteLineItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return nil
}

// Delete borra la factura; sus líneas caen por cascada.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.CompanyID, &inv.Number, &inv.TotalAmount, &inv.TaxAmount,
		&inv.AmountReceived, &inv.Status, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanLine(row pgx.Row) (*entity.InvoiceLineItem, error) {
	var li entity.InvoiceLineItem
	var hsn *string
	err := row.Scan(
		&li.ID, &li.InvoiceID, &li.InventoryItemID, &li.Position, &li.ItemName, &hsn, &li.ItemUnit,
		&li.Quantity, &li.UnitPrice, &li.Discount, &li.TaxRate, &li.LineTotal, &li.Boxes, &li.ItemsPerBox,
	)
	if err != nil {
		return nil, err
	}
	li.ItemHSN = derefStr(hsn)
	return &li, nil
}
