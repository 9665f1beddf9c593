package entity

import "time"

// Tipos de parceiro comercial.
const (
	PartnerTypeCustomer = "CUSTOMER"
	PartnerTypeSupplier = "SUPPLIER"
	PartnerTypeBoth     = "BOTH"
)

// Partner representa um cliente e/ou fornecedor.
type Partner struct {
	ID        string
	Name      string
	Document  string // CPF ou CNPJ, apenas dígitos
	Type      string // CUSTOMER, SUPPLIER, BOTH
	Email     string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
