package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemInput linha de compra no request.
type PurchaseItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	PartnerID     string              `json:"partner_id" validate:"required"`
	InvoiceNumber string              `json:"invoice_number" validate:"required"`
	InvoiceSeries string              `json:"invoice_series"`
	IssueDate     *time.Time          `json:"issue_date"`
	DueDate       *time.Time          `json:"due_date"` // vencimento da conta a pagar
	Items         []PurchaseItemInput `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemResponse linha de compra na resposta.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseResponse resposta de compra com itens.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	PartnerID     string                 `json:"partner_id"`
	InvoiceNumber string                 `json:"invoice_number"`
	InvoiceSeries string                 `json:"invoice_series,omitempty"`
	IssueDate     time.Time              `json:"issue_date"`
	Total         decimal.Decimal        `json:"total"`
	Status        string                 `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse listagem paginada de compras.
type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Page      PageResponse       `json:"page"`
}
