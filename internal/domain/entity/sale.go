package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma venda.
const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Formas de pagamento aceitas.
const (
	PaymentCash     = "DINHEIRO"
	PaymentCard     = "CARTAO"
	PaymentPix      = "PIX"
	PaymentOnCredit = "A_PRAZO" // gera conta a receber
)

// Sale é o cabeçalho de uma venda; os itens vivem em SaleItem.
// Invariante: Total == soma dos totais dos itens no momento da criação.
type Sale struct {
	ID            string
	UserID        string
	PartnerID     string // cliente; pode ser vazio (venda ao consumidor)
	PaymentMethod string
	Total         decimal.Decimal
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*SaleItem
}

// SaleItem é uma linha da venda. Total = Quantity × UnitPrice.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}
