package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CompanyFilter filtros para listar empresas (clientes) de un usuario.
type CompanyFilter struct {
	UserID  string
	Search  string // coincidencia parcial por nombre o GSTIN
	Deleted bool   // true = papelera
	Limit   int
	Offset  int
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Todas las lecturas filtran por user_id.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, userID, id string) (*entity.Company, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, userID, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	UpdatePending(ctx context.Context, userID, id string, pending decimal.Decimal, at time.Time) error
	List(ctx context.Context, f CompanyFilter) ([]*entity.Company, error)
	// Count total de filas del filtro, sin Limit ni Offset.
	Count(ctx context.Context, f CompanyFilter) (int, error)
	SoftDelete(ctx context.Context, userID, id string, at time.Time) error
	Restore(ctx context.Context, userID, id string) error
	// Delete elimina la fila; facturas y pagos caen por cascada.
	Delete(ctx context.Context, userID, id string) error
	// ListDeletedBefore devuelve empresas en papelera de todos los usuarios cuyo deleted_at < before.
	ListDeletedBefore(ctx context.Context, before time.Time) ([]*entity.Company, error)
}
