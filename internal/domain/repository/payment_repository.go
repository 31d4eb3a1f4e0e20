package repository

import (
	"context"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para los abonos de una empresa.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.CompanyPayment) error
	GetByID(ctx context.Context, userID, id string) (*entity.CompanyPayment, error)
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.CompanyPayment, error)
	// ListByCompany companyID vacío = todos los pagos del usuario.
	ListByCompany(ctx context.Context, userID, companyID string) ([]*entity.CompanyPayment, error)
	Delete(ctx context.Context, userID, id string) error
}
