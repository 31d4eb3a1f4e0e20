package dto

import "time"

// SellerInfoRequest datos del emisor que se imprimen en la factura.
type SellerInfoRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Pincode   string `json:"pincode"`
	GSTNo     string `json:"gst_no"`
	PAN       string `json:"pan"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Website   string `json:"website"`
}

// SellerInfoResponse datos del emisor guardados.
type SellerInfoResponse struct {
	SellerInfoRequest
	UpdatedAt time.Time `json:"updated_at"`
}

// BankDetailsRequest cuenta bancaria del emisor.
type BankDetailsRequest struct {
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	IFSCCode      string `json:"ifsc_code"`
	Branch        string `json:"branch"`
	SwiftCode     string `json:"swift_code"`
}

// BankDetailsResponse cuenta bancaria guardada.
type BankDetailsResponse struct {
	BankDetailsRequest
	UpdatedAt time.Time `json:"updated_at"`
}
