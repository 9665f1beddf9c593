package dto

import "time"

// EmitInvoiceRequest body para POST /api/fiscal/invoices.
type EmitInvoiceRequest struct {
	SaleID string `json:"sale_id" validate:"required"`
	Series string `json:"series"` // vazio = série padrão da configuração
}

// FiscalInvoiceResponse resposta de nota fiscal.
type FiscalInvoiceResponse struct {
	ID        string     `json:"id"`
	SaleID    string     `json:"sale_id"`
	Number    int64      `json:"number"`
	Series    string     `json:"series"`
	AccessKey string     `json:"access_key"`
	Status    string     `json:"status"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// FiscalInvoiceListResponse listagem de notas.
type FiscalInvoiceListResponse struct {
	Invoices []FiscalInvoiceResponse `json:"invoices"`
	Page     PageResponse            `json:"page"`
}
