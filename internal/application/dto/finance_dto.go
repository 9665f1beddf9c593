package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest body para lançamento manual de conta a pagar/receber.
type CreateEntryRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	PartnerID   string          `json:"partner_id"`
}

// RegisterPaymentRequest body para POST /api/payables/:id/payments (e receivables).
type RegisterPaymentRequest struct {
	PaidAmount    decimal.Decimal `json:"paid_amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	PaidAt        *time.Time      `json:"paid_at"`
}

// EntryResponse resposta de conta a pagar/receber. Status já vem derivado
// (PENDING vencida aparece como OVERDUE).
type EntryResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	PartnerID     string          `json:"partner_id,omitempty"`
	SaleID        string          `json:"sale_id,omitempty"`
	PurchaseID    string          `json:"purchase_id,omitempty"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntryListResponse listagem paginada de contas.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Page    PageResponse    `json:"page"`
}
