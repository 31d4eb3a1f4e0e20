package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem artículo del catálogo. El HSN solo se valida por presencia.
type InventoryItem struct {
	ID        string
	UserID    string
	Name      string
	HSN       string
	Category  string
	Rate      decimal.Decimal // precio unitario (>= 0)
	Stock     int
	Unit      string // pcs, kg, box...
	GSTRate   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
