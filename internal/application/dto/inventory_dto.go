package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest entrada para crear un artículo del catálogo.
type CreateInventoryItemRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	HSN      string          `json:"hsn" validate:"required"`
	Category string          `json:"category"`
	Rate     decimal.Decimal `json:"rate"`
	Stock    int             `json:"stock"`
	Unit     string          `json:"unit"` // vacío = pcs
	GSTRate  decimal.Decimal `json:"gst_rate"`
}

// UpdateInventoryItemRequest entrada para actualizar un artículo (campos opcionales).
type UpdateInventoryItemRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	HSN      *string          `json:"hsn"`
	Category *string          `json:"category"`
	Rate     *decimal.Decimal `json:"rate"`
	Stock    *int             `json:"stock"`
	Unit     *string          `json:"unit"`
	GSTRate  *decimal.Decimal `json:"gst_rate"`
}

// InventoryItemResponse salida de un artículo.
type InventoryItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn"`
	Category  string          `json:"category"`
	Rate      decimal.Decimal `json:"rate"`
	Stock     int             `json:"stock"`
	Unit      string          `json:"unit"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryItemListResponse lista paginada de artículos.
type InventoryItemListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ImportResult resumen de una importación masiva de artículos.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"` // filas con error (motivo)
}
