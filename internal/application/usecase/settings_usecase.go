package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

// SettingsUseCase datos del emisor y su banco. Una fila por usuario.
type SettingsUseCase struct {
	repo repository.SettingsRepository
	now  func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SettingsUseCase) WithClock(now func() time.Time) *SettingsUseCase {
	uc.now = now
	return uc
}

// GetSeller devuelve ErrNotFound si el usuario aún no cargó sus datos.
func (uc *SettingsUseCase) GetSeller(ctx context.Context, userID string) (*dto.SellerInfoResponse, error) {
	s, err := uc.repo.GetSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSellerResponse(s), nil
}

// SaveSeller crea o reemplaza los datos del emisor.
func (uc *SettingsUseCase) SaveSeller(ctx context.Context, userID string, in dto.SellerInfoRequest) (*dto.SellerInfoResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	s := &entity.SellerInfo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		StateCode: strings.TrimSpace(in.StateCode),
		Pincode:   strings.TrimSpace(in.Pincode),
		GSTNo:     strings.ToUpper(strings.TrimSpace(in.GSTNo)),
		PAN:       strings.ToUpper(strings.TrimSpace(in.PAN)),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Website:   strings.TrimSpace(in.Website),
		UpdatedAt: uc.now(),
	}
	if err := uc.repo.UpsertSeller(ctx, s); err != nil {
		return nil, err
	}
	return toSellerResponse(s), nil
}

// GetBank devuelve ErrNotFound si no hay cuenta cargada.
func (uc *SettingsUseCase) GetBank(ctx context.Context, userID string) (*dto.BankDetailsResponse, error) {
	b, err := uc.repo.GetBank(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBankResponse(b), nil
}

// SaveBank crea o reemplaza la cuenta bancaria.
func (uc *SettingsUseCase) SaveBank(ctx context.Context, userID string, in dto.BankDetailsRequest) (*dto.BankDetailsResponse, error) {
	b := &entity.BankDetails{
		ID:            uuid.New().String(),
		UserID:        userID,
		AccountName:   strings.TrimSpace(in.AccountName),
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		IFSCCode:      strings.ToUpper(strings.TrimSpace(in.IFSCCode)),
		Branch:        strings.TrimSpace(in.Branch),
		SwiftCode:     strings.ToUpper(strings.TrimSpace(in.SwiftCode)),
		UpdatedAt:     uc.now(),
	}
	if b.BankName == "" {
		return nil, domain.NewValidationError("bank_name", "requerido")
	}
	if b.AccountNumber == "" {
		return nil, domain.NewValidationError("account_number", "requerido")
	}
	if err := uc.repo.UpsertBank(ctx, b); err != nil {
		return nil, err
	}
	return toBankResponse(b), nil
}

func toSellerResponse(s *entity.SellerInfo) *dto.SellerInfoResponse {
	return &dto.SellerInfoResponse{
		SellerInfoRequest: dto.SellerInfoRequest{
			Name:      s.Name,
			Address:   s.Address,
			City:      s.City,
			State:     s.State,
			StateCode: s.StateCode,
			Pincode:   s.Pincode,
			GSTNo:     s.GSTNo,
			PAN:       s.PAN,
			Phone:     s.Phone,
			Email:     s.Email,
			Website:   s.Website,
		},
		UpdatedAt: s.UpdatedAt,
	}
}

func toBankResponse(b *entity.BankDetails) *dto.BankDetailsResponse {
	return &dto.BankDetailsResponse{
		BankDetailsRequest: dto.BankDetailsRequest{
			AccountName:   b.AccountName,
			BankName:      b.BankName,
			AccountNumber: b.AccountNumber,
			IFSCCode:      b.IFSCCode,
			Branch:        b.Branch,
			SwiftCode:     b.SwiftCode,
		},
		UpdatedAt: b.UpdatedAt,
	}
}
