package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo seller_info y bank_details: una fila por usuario.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetSeller nil, nil si el usuario no cargó sus datos.
func (r *SettingsRepo) GetSeller(ctx context.Context, userID string) (*entity.SellerInfo, error) {
	var s entity.SellerInfo
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, name, address, city, state, state_code, pincode, gst_no, pan, phone, email, website, updated_at
		FROM seller_info WHERE user_id = $1`, userID).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Address, &s.City, &s.State, &s.StateCode, &s.Pincode,
		&s.GSTNo, &s.PAN, &s.Phone, &s.Email, &s.Website, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller info: %w", err)
	}
	return &s, nil
}

// UpsertSeller inserta o reemplaza la fila del usuario.
func (r *SettingsRepo) UpsertSeller(ctx context.Context, s *entity.SellerInfo) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO seller_info (id, user_id, name, address, city, state, state_code, pincode, gst_no, pan, phone, email, website, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
		    name = EXCLUDED.name, address = EXCLUDED.address, city = EXCLUDED.city,
		    state = EXCLUDED.state, state_code = EXCLUDED.state_code, pincode = EXCLUDED.pincode,
		    gst_no = EXCLUDED.gst_no, pan = EXCLUDED.pan, phone = EXCLUDED.phone,
		    email = EXCLUDED.email, website = EXCLUDED.website, updated_at = EXCLUDED.updated_at`,
		s.ID, s.UserID, s.Name, s.Address, s.City, s.State, s.StateCode, s.Pincode,
		s.GSTNo, s.PAN, s.Phone, s.Email, s.Website, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert seller info: %w", err)
	}
	return nil
}

// GetBank nil, nil si no hay cuenta cargada.
func (r *SettingsRepo) GetBank(ctx context.Context, userID string) (*entity.BankDetails, error) {
	var b entity.BankDetails
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, account_name, bank_name, account_number, ifsc_code, branch, swift_code, updated_at
		FROM bank_details WHERE user_id = $1`, userID).Scan(
		&b.ID, &b.UserID, &b.AccountName, &b.BankName, &b.AccountNumber, &b.IFSCCode, &b.Branch, &b.SwiftCode, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank details: %w", err)
	}
	return &b, nil
}

// UpsertBank inserta o reemplaza la cuenta del usuario.
func (r *SettingsRepo) UpsertBank(ctx context.Context, b *entity.BankDetails) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bank_details (id, user_id, account_name, bank_name, account_number, ifsc_code, branch, swift_code, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
		    account_name = EXCLUDED.account_name, bank_name = EXCLUDED.bank_name,
		    account_number = EXCLUDED.account_number, ifsc_code = EXCLUDED.ifsc_code,
		    branch = EXCLUDED.branch, swift_code = EXCLUDED.swift_code, updated_at = EXCLUDED.updated_at`,
		b.ID, b.UserID, b.AccountName, b.BankName, b.AccountNumber, b.IFSCCode, b.Branch, b.SwiftCode, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bank details: %w", err)
	}
	return nil
}
