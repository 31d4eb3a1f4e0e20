package repository

import (
	"context"

	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para el catálogo de artículos.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, userID, id string) (*entity.InventoryItem, error)
	GetByName(ctx context.Context, userID, name string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context, userID, search string, limit, offset int) ([]*entity.InventoryItem, error)
	Count(ctx context.Context, userID, search string) (int, error)
	Delete(ctx context.Context, userID, id string) error
}
