package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, user_id, name, gst_no, pan, address, state, state_code, phone, email,
	pending_amount, last_transaction, is_deleted, deleted_at, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, user_id, name, gst_no, pan, address, state, state_code, phone, email,
		                       pending_amount, last_transaction, is_deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.Name, nullIfEmpty(c.GSTNo), nullIfEmpty(c.PAN), nullIfEmpty(c.Address),
		nullIfEmpty(c.State), nullIfEmpty(c.StateCode), nullIfEmpty(c.Phone), nullIfEmpty(c.Email),
		c.PendingAmount, c.LastTransaction, c.IsDeleted, c.DeletedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa del usuario (activa o en papelera).
func (r *CompanyRepo) GetByID(ctx context.Context, userID, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1 AND id = $2`, userID, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *CompanyRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1 AND id = $2 FOR UPDATE`, userID, id)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de contacto. El saldo solo cambia vía UpdatePending.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $3, gst_no = $4, pan = $5, address = $6, state = $7, state_code = $8,
		    phone = $9, email = $10, updated_at = $11
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		c.UserID, c.ID, c.Name, nullIfEmpty(c.GSTNo), nullIfEmpty(c.PAN), nullIfEmpty(c.Address),
		nullIfEmpty(c.State), nullIfEmpty(c.StateCode), nullIfEmpty(c.Phone), nullIfEmpty(c.Email),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePending fija el saldo y la fecha del último movimiento.
func (r *CompanyRepo) UpdatePending(ctx context.Context, userID, id string, pending decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE companies SET pending_amount = $3, last_transaction = $4, updated_at = $4
		WHERE user_id = $1 AND id = $2`, userID, id, pending, at)
	if err != nil {
		return fmt.Errorf("update company pending: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List empresas activas o en papelera. Las activas por nombre, la papelera por
// fecha de borrado (más reciente primero).
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	order := "name ASC"
	if f.Deleted {
		order = "deleted_at DESC"
	}
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE user_id = $1 AND is_deleted = $2
		  AND ($3::text = '' OR name ILIKE $4 OR gst_no ILIKE $4)
		ORDER BY ` + order + `
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.UserID, f.Deleted, f.Search, likePattern(f.Search), limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return collectCompanies(rows)
}

// Count cuenta las empresas del filtro para la paginación.
func (r *CompanyRepo) Count(ctx context.Context, f repository.CompanyFilter) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies
		WHERE user_id = $1 AND is_deleted = $2
		  AND ($3::text = '' OR name ILIKE $4 OR gst_no ILIKE $4)`,
		f.UserID, f.Deleted, f.Search, likePattern(f.Search)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}

// SoftDelete manda la empresa a la papelera.
func (r *CompanyRepo) SoftDelete(ctx context.Context, userID, id string, at time.Time) error {
	return r.execOne(ctx, "soft delete company", `
		UPDATE companies SET is_deleted = TRUE, deleted_at = $3, updated_at = $3
		WHERE user_id = $1 AND id = $2`, userID, id, at)
}

// Restore saca la empresa de la papelera.
func (r *CompanyRepo) Restore(ctx context.Context, userID, id string) error {
	return r.execOne(ctx, "restore company", `
		UPDATE companies SET is_deleted = FALSE, deleted_at = NULL, updated_at = now()
		WHERE user_id = $1 AND id = $2`, userID, id)
}

// Delete borra la fila; invoices, invoice_line_items y company_payments caen por ON DELETE CASCADE.
func (r *CompanyRepo) Delete(ctx context.Context, userID, id string) error {
	return r.execOne(ctx, "delete company", `DELETE FROM companies WHERE user_id = $1 AND id = $2`, userID, id)
}

// ListDeletedBefore empresas en papelera de todos los usuarios con deleted_at < before.
func (r *CompanyRepo) ListDeletedBefore(ctx context.Context, before time.Time) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT `+companyColumns+` FROM companies
		WHERE is_deleted = TRUE AND deleted_at < $1
		ORDER BY deleted_at ASC`, before)
	if err != nil {
		return nil, fmt.Errorf("list expired companies: %w", err)
	}
	return collectCompanies(rows)
}

func (r *CompanyRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	var gst, pan, address, state, stateCode, phone, email *string
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &gst, &pan, &address, &state, &stateCode, &phone, &email,
		&c.PendingAmount, &c.LastTransaction, &c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.GSTNo, c.PAN, c.Address = derefStr(gst), derefStr(pan), derefStr(address)
	c.State, c.StateCode = derefStr(state), derefStr(stateCode)
	c.Phone, c.Email = derefStr(phone), derefStr(email)
	return &c, nil
}

func collectCompanies(rows pgx.Rows) ([]*entity.Company, error) {
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
