package repository

import (
	"context"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
)

// InvoiceFilter filtros para listar facturas.
type InvoiceFilter struct {
	UserID    string
	CompanyID string // vacío = todas
	Limit     int
	Offset    int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create devuelve domain.ErrDuplicate si el número ya existe para el usuario.
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLineItems(ctx context.Context, items []*entity.InvoiceLineItem) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, userID, id string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, userID, number string) (*entity.Invoice, error)
	// SearchByNumber coincidencia parcial sobre invoice_number, las más recientes primero.
	SearchByNumber(ctx context.Context, userID, term string, limit int) ([]*entity.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	Count(ctx context.Context, f InvoiceFilter) (int, error)
	GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error)
	// GetLineItemsByInvoiceIDs agrupa las líneas por factura (exportación).
	GetLineItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceLineItem, error)
	DeleteLineItems(ctx context.Context, invoiceID string) error
	Delete(ctx context.Context, userID, id string) error
}
