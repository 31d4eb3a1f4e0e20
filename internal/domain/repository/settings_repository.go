package repository

import (
	"context"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
)

// SettingsRepository datos del emisor y cuenta bancaria (una fila por usuario).
type SettingsRepository interface {
	GetSeller(ctx context.Context, userID string) (*entity.SellerInfo, error)
	UpsertSeller(ctx context.Context, seller *entity.SellerInfo) error
	GetBank(ctx context.Context, userID string) (*entity.BankDetails, error)
	UpsertBank(ctx context.Context, bank *entity.BankDetails) error
}
