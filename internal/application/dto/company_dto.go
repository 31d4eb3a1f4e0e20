package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear una empresa (cliente).
type CreateCompanyRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	GSTNo         string          `json:"gst_no" validate:"omitempty,len=15"`
	PAN           string          `json:"pan"`
	Address       string          `json:"address"`
	State         string          `json:"state"`
	StateCode     string          `json:"state_code"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email" validate:"omitempty,email"`
	PendingAmount decimal.Decimal `json:"pending_amount"` // saldo inicial, >= 0
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
// PendingAmount es un ajuste manual del saldo (>= 0); no deja asiento de pago.
type UpdateCompanyRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	GSTNo         *string          `json:"gst_no"`
	PAN           *string          `json:"pan"`
	Address       *string          `json:"address"`
	State         *string          `json:"state"`
	StateCode     *string          `json:"state_code"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email" validate:"omitempty,email"`
	PendingAmount *decimal.Decimal `json:"pending_amount"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	GSTNo           string          `json:"gst_no"`
	PAN             string          `json:"pan"`
	Address         string          `json:"address"`
	State           string          `json:"state"`
	StateCode       string          `json:"state_code"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	LastTransaction *time.Time      `json:"last_transaction,omitempty"`
	IsDeleted       bool            `json:"is_deleted"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
	DaysUntilPurge  *int            `json:"days_until_purge,omitempty"` // solo en la papelera
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PurgeResult resultado de la purga de la papelera.
type PurgeResult struct {
	Purged []string `json:"purged"`
	Failed []string `json:"failed,omitempty"`
}
