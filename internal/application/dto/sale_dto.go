package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemInput linha de venda no request.
type SaleItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"` // zero = usa o preço do produto
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	PartnerID     string          `json:"partner_id"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=DINHEIRO CARTAO PIX A_PRAZO"`
	DueDate       *time.Time      `json:"due_date"` // vencimento da conta a receber (A_PRAZO)
	Items         []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse linha de venda na resposta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse resposta de venda com itens.
type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	PartnerID     string             `json:"partner_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse listagem paginada de vendas (sem itens).
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Page  PageResponse   `json:"page"`
}
