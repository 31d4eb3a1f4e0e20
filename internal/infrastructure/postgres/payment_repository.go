package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, user_id, company_id, amount, previous_balance, new_balance, note, idempotency_key, created_at`

// PaymentRepo abonos de cartera (company_payments).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el abono. Si la clave de idempotencia ya existe devuelve
// domain.ErrDuplicate sin abortar la transacción.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.CompanyPayment) error {
	query := `
		INSERT INTO company_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING
		RETURNING id`
	var id string
	err := r.q.QueryRow(ctx, query,
		p.ID, p.UserID, p.CompanyID, p.Amount, p.PreviousBalance, p.NewBalance,
		nullIfEmpty(p.Note), nullIfEmpty(p.IdempotencyKey), p.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un abono del usuario.
func (r *PaymentRepo) GetByID(ctx context.Context, userID, id string) (*entity.CompanyPayment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM company_payments WHERE user_id = $1 AND id = $2`, userID, id)
}

// GetByIdempotencyKey busca un abono previo con la misma clave.
func (r *PaymentRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.CompanyPayment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM company_payments WHERE user_id = $1 AND idempotency_key = $2`, userID, key)
}

func (r *PaymentRepo) getOne(ctx context.Context, query string, args ...any) (*entity.CompanyPayment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByCompany abonos más recientes primero; companyID vacío = todos.
func (r *PaymentRepo) ListByCompany(ctx context.Context, userID, companyID string) ([]*entity.CompanyPayment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM company_payments
		WHERE user_id = $1 AND ($2::text = '' OR company_id::text = $2)
		ORDER BY created_at DESC`, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanyPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el abono.
func (r *PaymentRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM company_payments WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPayment(row pgx.Row) (*entity.CompanyPayment, error) {
	var p entity.CompanyPayment
	var note, key *string
	if err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyID, &p.Amount, &p.PreviousBalance, &p.NewBalance,
		&note, &key, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Note, p.IdempotencyKey = derefStr(note), derefStr(key)
	return &p, nil
}
