package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Company representa un cliente (comprador) del usuario. PendingAmount es el saldo
// de cartera: lo adeudado por facturas netas de pagos. Nunca es negativo.
type Company struct {
	ID              string
	UserID          string
	Name            string
	GSTNo           string // GSTIN opcional (15 caracteres)
	PAN             string
	Address         string
	State           string
	StateCode       string
	Phone           string
	Email           string
	PendingAmount   decimal.Decimal
	LastTransaction *time.Time
	IsDeleted       bool
	DeletedAt       *time.Time // borrado lógico; nil si está activo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DaysUntilPurge días restantes antes de que el cliente eliminado pueda borrarse
// definitivamente. 0 si no está eliminado o si la ventana ya venció.
func (c *Company) DaysUntilPurge(now time.Time, retention time.Duration) int {
	if !c.IsDeleted || c.DeletedAt == nil {
		return 0
	}
	left := retention - now.Sub(*c.DeletedAt)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// PurgeEligible indica si la ventana de restauración ya terminó.
func (c *Company) PurgeEligible(now time.Time, retention time.Duration) bool {
	return c.IsDeleted && c.DeletedAt != nil && !now.Before(c.DeletedAt.Add(retention))
}
