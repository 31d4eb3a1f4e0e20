package entity

import "time"

// SellerInfo datos del emisor que aparecen en el PDF (una fila por usuario).
type SellerInfo struct {
	ID        string
	UserID    string
	Name      string
	Address   string // puede tener varias líneas separadas por \n
	City      string
	State     string
	StateCode string
	Pincode   string
	GSTNo     string
	PAN       string
	Phone     string
	Email     string
	Website   string
	UpdatedAt time.Time
}

// BankDetails cuenta bancaria del emisor (una fila por usuario).
type BankDetails struct {
	ID            string
	UserID        string
	AccountName   string
	BankName      string
	AccountNumber string
	IFSCCode      string
	Branch        string
	SwiftCode     string
	UpdatedAt     time.Time
}
